package stream

// page draws the streamed frames: wall strips across the canvas and a
// top-down map in the corner. Arrow keys and WASD send key events back.
const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>tile-raycaster</title>
<style>
  body { margin: 0; background: #111; color: #ccc; font: 12px monospace; }
  canvas { display: block; margin: 0 auto; image-rendering: pixelated; }
  #status { text-align: center; padding: 4px; }
</style>
</head>
<body>
<canvas id="view" width="960" height="540"></canvas>
<div id="status">connecting…</div>
<script>
const canvas = document.getElementById("view");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
const keys = {
  ArrowUp: "forward", KeyW: "forward",
  ArrowDown: "back", KeyS: "back",
  ArrowLeft: "left", KeyA: "left",
  ArrowRight: "right", KeyD: "right",
};

function draw(map, frame) {
  const W = canvas.width, H = canvas.height;
  ctx.fillStyle = "#000"; ctx.fillRect(0, 0, W, H / 2);
  ctx.fillStyle = "#2a221c"; ctx.fillRect(0, H / 2, W, H / 2);

  const n = frame.rays.length;
  const plane = (W / 2) / Math.tan(frame.fov / 2);
  const colW = W / n;
  frame.rays.forEach((r, i) => {
    if (r.distance === null) return;
    const d = Math.max(r.distance * Math.cos(r.angle - frame.pose.heading), 1e-6);
    const h = map.tile_size / d * plane;
    const shade = Math.max(40, 255 - d * 0.6) * (r.vertical ? 1 : 0.7);
    ctx.fillStyle = "rgb(" + shade + "," + shade + "," + shade + ")";
    ctx.fillRect(i * colW, (H - h) / 2, colW + 1, h);
  });

  const s = 0.2;
  const ts = map.tile_size * s;
  map.layout.forEach((row, y) => {
    for (let x = 0; x < row.length; x++) {
      ctx.fillStyle = row[x] === "#" ? "#222" : "#fff";
      ctx.fillRect(x * ts, y * ts, ts, ts);
    }
  });
  ctx.strokeStyle = "rgba(255,0,0,0.3)";
  ctx.beginPath();
  frame.rays.forEach((r, i) => {
    if (r.hit_x === null || i % 4) return;
    ctx.moveTo(frame.pose.x * s, frame.pose.y * s);
    ctx.lineTo(r.hit_x * s, r.hit_y * s);
  });
  ctx.stroke();
  ctx.fillStyle = "red";
  ctx.fillRect(frame.pose.x * s - 2, frame.pose.y * s - 2, 4, 4);

  status.textContent = "tick " + frame.tick + "  (" + frame.pose.x.toFixed(1) + ", " +
    frame.pose.y.toFixed(1) + ")  " + (frame.pose.heading * 180 / Math.PI).toFixed(1) + "°  " + frame.move;
}

fetch("/map").then(r => r.json()).then(map => {
  const proto = location.protocol === "https:" ? "wss://" : "ws://";
  const ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = ev => draw(map, JSON.parse(ev.data));
  ws.onclose = () => { status.textContent = "disconnected"; };
  const send = (ev, pressed) => {
    const key = keys[ev.code];
    if (!key || ev.repeat) return;
    ev.preventDefault();
    ws.send(JSON.stringify({ key: key, pressed: pressed }));
  };
  window.addEventListener("keydown", ev => send(ev, true));
  window.addEventListener("keyup", ev => send(ev, false));
});
</script>
</body>
</html>
`
