package stream

import "strings"

const indexTemplate = `<!doctype html>
<html><head><meta charset="utf-8"><title>wirecam</title>
<style>body{margin:0;background:#002266;color:#eee;font:12px monospace}canvas{display:block;width:100vw;height:90vh}pre{margin:4px}</style>
</head><body><canvas id="c"></canvas><pre id="s"></pre>
<script>
const c = document.getElementById("c"), s = document.getElementById("s"), g = c.getContext("2d");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "{{PATH}}");
const keys = {ArrowUp: "<up>", ArrowDown: "<down>", ArrowLeft: "<left>", ArrowRight: "<right>", Tab: "<tab>",
  Escape: "<esc>", F1: "<f1>", F2: "<f2>", F3: "<f3>", F4: "<f4>", F5: "<f5>", F8: "<f8>", F9: "<f9>", " ": "<space>"};
addEventListener("keydown", e => {
  const k = keys[e.key] || (e.key.length === 1 && e.key !== "<" ? e.key : null);
  if (k) { ws.send(JSON.stringify({keys: k})); e.preventDefault(); }
});
ws.onmessage = ev => {
  const m = JSON.parse(ev.data);
  if (m.type !== "frame") return;
  c.width = c.clientWidth; c.height = c.clientHeight;
  g.clearRect(0, 0, c.width, c.height);
  g.strokeStyle = "#eee"; g.fillStyle = "#eee";
  const px = x => (x + 1) / 2 * c.width, py = y => (1 - y) / 2 * c.height;
  for (const [x1, y1, x2, y2] of m.segments || []) {
    g.beginPath(); g.moveTo(px(x1), py(y1)); g.lineTo(px(x2), py(y2)); g.stroke();
  }
  if (m.rows) { g.font = "12px monospace"; m.rows.forEach((r, i) => g.fillText(r, 0, 12 * (i + 1))); }
  const p = m.camera.position;
  s.textContent = "pos: (" + p.map(v => v.toFixed(2)).join(", ") + ")  yaw: " + m.camera.yaw.toFixed(1) +
    "  pitch: " + m.camera.pitch.toFixed(1) + "  " + m.marker + " " + m.mode + " " + m.shape;
};
</script></body></html>
`

func indexHTML(path string) string {
	return strings.ReplaceAll(indexTemplate, "{{PATH}}", path)
}
