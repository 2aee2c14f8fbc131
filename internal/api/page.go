package api

import (
	"net/http"
)

// settingsPage is the embedded settings UI. It edits the settings
// document through the JSON API and follows changes over the WebSocket.
const settingsPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SwiftScroll Settings</title>
<style>
  body { font-family: "Segoe UI", sans-serif; max-width: 640px; margin: 2em auto; color: #222; }
  h1 { font-size: 1.4em; }
  label { display: block; margin: 0.6em 0 0.2em; font-weight: 600; }
  input[type=number] { width: 6em; }
  .row { margin: 0.4em 0; }
  .muted { color: #777; font-size: 0.9em; }
  button { margin-top: 1em; padding: 0.4em 1.2em; }
  #status { margin-left: 1em; color: #2a7; }
</style>
</head>
<body>
<h1>SwiftScroll</h1>
<div class="row">
  <label><input type="checkbox" id="enabled"> Smooth scrolling enabled</label>
  <label><input type="checkbox" id="shift_key_horizontal"> Shift + wheel scrolls horizontally</label>
  <label><input type="checkbox" id="start_on_boot"> Start with Windows</label>
</div>
<div class="row">
  <label for="step_size_px">Step size (px, 1-25)</label>
  <input type="number" id="step_size_px" min="1" max="25">
  <label for="animation_time_ms">Animation time (ms)</label>
  <input type="number" id="animation_time_ms" min="1">
  <label for="acceleration_delta_ms">Acceleration window (ms)</label>
  <input type="number" id="acceleration_delta_ms" min="0">
  <label for="acceleration_max">Acceleration cap</label>
  <input type="number" id="acceleration_max" min="1">
  <label for="tail_to_head_ratio">Tail-to-head ratio</label>
  <input type="number" id="tail_to_head_ratio" min="1">
  <label><input type="checkbox" id="animation_easing"> Eased animation curve</label>
  <label><input type="checkbox" id="horizontal_smoothness"> Animate horizontal axis</label>
  <label><input type="checkbox" id="reverse_wheel_direction"> Reverse wheel direction</label>
</div>
<div class="row">
  <label for="excluded_apps">Excluded apps (one process name per line)</label>
  <textarea id="excluded_apps" rows="4" cols="40"></textarea>
</div>
<button id="save">Save</button><span id="status"></span>
<p class="muted">Profiles and per-app bindings are edited in settings.json
beside the executable; the file reloads automatically.</p>
<script>
const numbers = ["step_size_px","animation_time_ms","acceleration_delta_ms",
  "acceleration_max","tail_to_head_ratio"];
const checks = ["enabled","shift_key_horizontal","start_on_boot","animation_easing",
  "horizontal_smoothness","reverse_wheel_direction"];
let current = null;

function render(s) {
  current = s;
  numbers.forEach(k => document.getElementById(k).value = s[k]);
  checks.forEach(k => document.getElementById(k).checked = !!s[k]);
  document.getElementById("excluded_apps").value = (s.excluded_apps || []).join("\n");
}

async function load() {
  const res = await fetch("/api/settings");
  render(await res.json());
}

document.getElementById("save").onclick = async () => {
  const s = current || {};
  numbers.forEach(k => s[k] = parseInt(document.getElementById(k).value, 10));
  checks.forEach(k => s[k] = document.getElementById(k).checked);
  s.excluded_apps = document.getElementById("excluded_apps").value
    .split("\n").map(v => v.trim()).filter(v => v);
  const res = await fetch("/api/settings", {method: "POST", body: JSON.stringify(s)});
  document.getElementById("status").textContent = res.ok ? "Saved" : "Save failed";
  setTimeout(() => document.getElementById("status").textContent = "", 2000);
};

const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = ev => {
  const msg = JSON.parse(ev.data);
  if (msg.type === "settings") render(msg.payload);
  if (msg.type === "status" && current) {
    current.enabled = msg.payload.enabled;
    document.getElementById("enabled").checked = msg.payload.enabled;
  }
};

load();
</script>
</body>
</html>`

// handleIndex serves the embedded settings page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(settingsPage))
}
