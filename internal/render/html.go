package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/view"
)

type htmlNode struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Selected bool    `json:"selected"`
}

type htmlLink struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
	Bi       bool   `json:"bi"`
}

type htmlConn struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Label    string `json:"label"`
}

// HTML writes a self-contained page that lays out the displayed subgraph
// with a small force simulation, starting from the reconciled positions.
// The sidebar lists connections and examples of the selected construction.
func HTML(w io.Writer, f view.Frame) error {
	nodes := make([]htmlNode, 0, len(f.Displayed.Nodes))
	for _, n := range f.Displayed.Nodes {
		nodes = append(nodes, htmlNode{
			ID:       string(n.ID),
			Name:     graph.FormatName(n.Name),
			X:        n.X,
			Y:        n.Y,
			Selected: n.ID == f.Selected,
		})
	}

	lines := Lines(f.Displayed.Edges)
	links := make([]htmlLink, 0, len(lines))
	for _, e := range lines {
		links = append(links, htmlLink{
			Source:   string(e.Source),
			Target:   string(e.Target),
			Relation: string(e.Relation),
			Bi:       e.Direction == graph.Bi,
		})
	}

	conns := make([]htmlConn, 0)
	examples := make([]string, 0)
	title := "no selection"
	if f.HasSelection() {
		for _, c := range view.Connections(f.Displayed, f.Selected) {
			conns = append(conns, htmlConn{ID: string(c.NodeID), Name: c.Name, Relation: string(c.Relation), Label: c.Label()})
		}
		if n, ok := f.Displayed.Node(f.Selected); ok {
			examples = append(examples, n.Examples...)
			title = string(n.ID) + ": " + graph.FormatName(n.Name)
		}
	}

	colors := make(map[string]string, len(RelationColors))
	for r, c := range RelationColors {
		colors[string(r)] = c
	}

	blobs := make([][]byte, 0, 6)
	for _, v := range []any{title, nodes, links, conns, examples, colors} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode page data: %w", err)
		}
		blobs = append(blobs, data)
	}

	_, err := fmt.Fprintf(w, htmlPage, blobs[0], blobs[1], blobs[2], blobs[3], blobs[4], blobs[5])
	return err
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>cxgraph</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{display:flex;height:100vh;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif;background:#f5f7fa;color:#2c3e50}
.sidebar{width:320px;padding:20px;overflow-y:auto;background:#fff;border-right:1px solid #e1e5ea}
.sidebar h2{font-size:16px;margin-bottom:12px}
.sidebar h3{font-size:13px;margin:18px 0 8px;color:#7f8c8d;text-transform:uppercase}
table{width:100%%;border-collapse:collapse;font-size:12px}
td{padding:4px 6px;border-bottom:1px solid #eef1f4}
.example{font-size:12px;padding:6px 8px;margin:4px 0;background:#f0f4f8;border-radius:4px}
.empty{color:#95a5a6;font-style:italic}
#graph{flex:1;position:relative}
canvas{display:block;width:100%%;height:100%%}
.legend{position:absolute;right:16px;bottom:16px;background:#fff;border:1px solid #e1e5ea;border-radius:6px;padding:10px 14px;font-size:12px}
.legend div{display:flex;align-items:center;gap:8px;margin:3px 0}
.swatch{width:24px;height:3px}
</style>
</head>
<body>
<div class="sidebar">
  <h2 id="title"></h2>
  <h3>Connections</h3>
  <table><tbody id="connections"></tbody></table>
  <h3>Examples</h3>
  <div id="examples"></div>
</div>
<div id="graph"><canvas id="canvas"></canvas><div class="legend" id="legend"></div></div>
<script>
"use strict";
const TITLE=%s;
const NODES=%s;
const LINKS=%s;
const CONNECTIONS=%s;
const EXAMPLES=%s;
const COLORS=%s;

document.getElementById('title').textContent=TITLE;

const tbody=document.getElementById('connections');
if(CONNECTIONS.length===0){
  const row=tbody.insertRow();const td=row.insertCell();td.colSpan=4;td.className='empty';td.textContent='No connected constructions';
}
CONNECTIONS.forEach(c=>{
  const row=tbody.insertRow();
  [c.id,c.name,c.relation,c.label].forEach(v=>{row.insertCell().textContent=v});
});

const exBox=document.getElementById('examples');
if(EXAMPLES.length===0){
  const d=document.createElement('div');d.className='example empty';d.textContent='No examples';exBox.appendChild(d);
}
EXAMPLES.forEach(e=>{const d=document.createElement('div');d.className='example';d.textContent=e;exBox.appendChild(d)});

const legend=document.getElementById('legend');
Object.keys(COLORS).forEach(r=>{
  const row=document.createElement('div');
  const sw=document.createElement('span');sw.className='swatch';sw.style.background=COLORS[r];
  row.appendChild(sw);row.appendChild(document.createTextNode(r));legend.appendChild(row);
});

const canvas=document.getElementById('canvas');
const ctx=canvas.getContext('2d');
let W,H;
function resize(){W=canvas.width=canvas.clientWidth;H=canvas.height=canvas.clientHeight}
resize();
window.addEventListener('resize',resize);

const byId={};
const nodes=NODES.map(n=>{const m={...n,vx:0,vy:0};byId[n.id]=m;return m});
const links=LINKS.filter(l=>byId[l.source]&&byId[l.target]).map(l=>({...l,s:byId[l.source],t:byId[l.target]}));
let alpha=1,drag=null;

function tick(){
  if(alpha<0.005)return;
  for(let i=0;i<nodes.length;i++){
    for(let j=i+1;j<nodes.length;j++){
      const a=nodes[i],b=nodes[j];
      let dx=b.x-a.x,dy=b.y-a.y,d2=dx*dx+dy*dy;if(d2<1)d2=1;
      const f=-200*alpha/d2;
      a.vx+=dx*f;a.vy+=dy*f;b.vx-=dx*f;b.vy-=dy*f;
    }
  }
  for(const l of links){
    const dx=l.t.x-l.s.x,dy=l.t.y-l.s.y,d=Math.sqrt(dx*dx+dy*dy)||1;
    const f=(d-120)/d*0.1*alpha;
    l.s.vx+=dx*f;l.s.vy+=dy*f;l.t.vx-=dx*f;l.t.vy-=dy*f;
  }
  let cx=0,cy=0;nodes.forEach(n=>{cx+=n.x;cy+=n.y});
  cx=cx/nodes.length-W/2;cy=cy/nodes.length-H/2;
  for(const n of nodes){
    if(n===drag){n.vx=n.vy=0;continue}
    n.vx*=0.6;n.vy*=0.6;n.x+=n.vx-cx;n.y+=n.vy-cy;
  }
  alpha*=0.98;
}

function head(x,y,angle,color){
  ctx.beginPath();ctx.moveTo(x,y);
  ctx.lineTo(x-9*Math.cos(angle-0.4),y-9*Math.sin(angle-0.4));
  ctx.lineTo(x-9*Math.cos(angle+0.4),y-9*Math.sin(angle+0.4));
  ctx.closePath();ctx.fillStyle=color;ctx.fill();
}

function draw(){
  ctx.clearRect(0,0,W,H);
  for(const l of links){
    const color=COLORS[l.relation]||'#999';
    const a=Math.atan2(l.t.y-l.s.y,l.t.x-l.s.x);
    ctx.beginPath();ctx.moveTo(l.s.x,l.s.y);ctx.lineTo(l.t.x,l.t.y);
    ctx.strokeStyle=color;ctx.lineWidth=2;ctx.stroke();
    head(l.t.x-17*Math.cos(a),l.t.y-17*Math.sin(a),a,color);
    if(l.bi)head(l.s.x+17*Math.cos(a),l.s.y+17*Math.sin(a),a+Math.PI,color);
  }
  for(const n of nodes){
    ctx.beginPath();ctx.arc(n.x,n.y,15,0,Math.PI*2);
    ctx.fillStyle=n.selected?'#e74c3c':'#3498db';ctx.fill();
    ctx.font='12px sans-serif';ctx.textAlign='center';ctx.fillStyle='#2c3e50';
    ctx.fillText(n.name,n.x,n.y-20);
    ctx.fillStyle='#7f8c8d';ctx.fillText('ID: '+n.id,n.x,n.y+30);
  }
}

function pick(x,y){
  for(let i=nodes.length-1;i>=0;i--){const n=nodes[i];if((n.x-x)**2+(n.y-y)**2<=225)return n}
  return null;
}
canvas.addEventListener('mousedown',e=>{drag=pick(e.offsetX,e.offsetY);if(drag)alpha=Math.max(alpha,0.3)});
canvas.addEventListener('mousemove',e=>{if(drag){drag.x=e.offsetX;drag.y=e.offsetY;alpha=Math.max(alpha,0.3)}});
canvas.addEventListener('mouseup',()=>{drag=null});

(function loop(){tick();draw();requestAnimationFrame(loop)})();
</script>
</body>
</html>
`
