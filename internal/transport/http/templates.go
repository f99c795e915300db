package http

// ── Guide page ────────────────────────────────────────────────────────────────

const tmplGuide = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>CableGuide</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'VT323','Courier New',monospace;background:#000;color:#ffd700;font-size:18px;overflow:hidden}
.topbar{background:#1a1a6e;border-bottom:4px solid #3c3cb4;padding:6px 14px;display:flex;gap:18px;align-items:center}
.topbar .brand{color:#fff;font-size:26px;letter-spacing:2px;text-shadow:2px 2px #000}
.topbar .clock{margin-left:auto;color:#7fff7f;font-size:22px}
.topbar .date{color:#9f9fff}
.topbar .visits{color:#9f9fff;font-size:14px}
.banner{background:#b40000;color:#fff;text-align:center;padding:3px;font-size:16px}
.adpanel{background:#14143c;border:3px solid #3c3cb4;margin:8px 14px;padding:8px;display:flex;gap:12px;align-items:center}
.adpanel img{height:60px}
.adpanel a{color:#7fbfff;text-decoration:none;font-size:20px}
.controls{display:flex;gap:14px;padding:4px 14px;align-items:center;font-size:15px}
.controls button{background:#1a1a6e;color:#ffd700;border:2px outset #3c3cb4;padding:2px 10px;font-family:inherit;font-size:15px;cursor:pointer}
.controls label{color:#9f9fff;cursor:pointer}
.controls .count{color:#7fff7f}
.slots{display:flex;margin:0 14px;background:#1a1a6e;border:2px solid #3c3cb4}
.slots .corner{width:120px;flex-shrink:0;border-right:2px solid #3c3cb4}
.slots .slot{width:{{.SlotWidthPx}}px;flex-shrink:0;padding:4px;border-right:1px solid #3c3cb4;color:#fff;text-align:center}
.viewport{height:calc(100vh - 220px);overflow:hidden;margin:0 14px;border:2px solid #3c3cb4;position:relative;cursor:grab}
.viewport.dragging{cursor:grabbing}
.reel{position:absolute;left:0;right:0;top:0;will-change:transform}
.row{display:flex;height:{{.Layout.RowHeightPx}}px;border-bottom:1px solid #14143c}
.row.hidden{display:none}
.chan{width:120px;flex-shrink:0;background:#1a1a6e;border-right:2px solid #3c3cb4;padding:4px;color:#fff}
.chan .num{color:#ffd700;font-size:22px}
.cell{flex-shrink:0;background:#14143c;border-right:1px solid #3c3cb4;padding:4px 6px;overflow:hidden}
.cell .title{color:#ffd700;white-space:nowrap;text-overflow:ellipsis;overflow:hidden}
.cell .desc{color:#9f9fff;font-size:13px;max-height:2.6em;overflow:hidden}
.empty{padding:30px;text-align:center;color:#9f9fff}
</style>
</head>
<body>
<div class="topbar">
	<span class="brand">CABLEGUIDE</span>
	<span class="date">{{.Date}}</span>
	<span class="visits">visitor #{{.Visits}}</span>
	<span class="clock" id="clock">{{.Clock}}</span>
</div>
{{if .ErrorMessage}}<div class="banner">{{.ErrorMessage}}</div>{{end}}
{{if .AdText}}<div class="banner">{{.AdText}}</div>{{end}}
<div class="adpanel">
{{if .Ad}}
	<a href="{{.Ad.URL}}" target="_blank" rel="noopener"><img src="{{.AdImageSrc}}" alt="{{.Ad.Alt}}"> {{.Ad.Label}}</a>
{{else}}
	<span>Your ad here. Call your local cable operator.</span>
{{end}}
</div>
<div class="controls">
	<button id="fs">FULLSCREEN</button>
	<span class="count"><span id="visible">{{.VisibleCount}}</span>/{{len .Layout.Rows}} channels</span>
	{{range .Layout.Rows}}<label><input type="checkbox" class="filter" data-ch="{{.Number}}" checked> {{.Number}}</label>{{end}}
</div>
<div class="slots">
	<div class="corner"></div>
	{{range .TimeSlots}}<div class="slot">{{.}}</div>{{end}}
</div>
<div class="viewport" id="viewport">
	<div class="reel" id="reel">
{{if .Layout.Rows}}
		{{template "rows" .Layout.Rows}}
		{{template "rows" .Layout.Rows}}
{{else}}
		<div class="empty">NO LISTINGS AVAILABLE</div>
{{end}}
	</div>
</div>
<script>
var sessionID={{.SessionID}};
var loopHeight={{.Layout.LoopHeightPx}};
var stepPx={{.ScrollStepPx}};
var offset=0,dragging=false,anchorY=0,anchorOffset=0;
var reel=document.getElementById('reel');
var viewport=document.getElementById('viewport');
function api(path,body){fetch('/api/session/'+sessionID+path,{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify(body||{})});}
function frame(){
	if(!dragging&&loopHeight>0){
		offset+=stepPx;
		while(offset>=loopHeight){offset-=loopHeight;}
		reel.style.transform='translateY(-'+offset+'px)';
	}
	requestAnimationFrame(frame);
}
requestAnimationFrame(frame);
viewport.addEventListener('pointerdown',function(e){dragging=true;anchorY=e.clientY;anchorOffset=offset;viewport.classList.add('dragging');api('/drag/start',{y:e.clientY});});
window.addEventListener('pointermove',function(e){
	if(!dragging||loopHeight<=0)return;
	offset=anchorOffset+(anchorY-e.clientY);
	while(offset<0){offset+=loopHeight;}
	while(offset>=loopHeight){offset-=loopHeight;}
	reel.style.transform='translateY(-'+offset+'px)';
	api('/drag/move',{y:e.clientY});
});
window.addEventListener('pointerup',function(e){if(!dragging)return;dragging=false;viewport.classList.remove('dragging');api('/drag/end',{});});
document.getElementById('fs').addEventListener('click',function(){
	if(document.fullscreenElement){document.exitFullscreen();api('/fullscreen',{on:false});}
	else{document.documentElement.requestFullscreen();api('/fullscreen',{on:true});}
});
Array.prototype.forEach.call(document.querySelectorAll('.filter'),function(cb){
	cb.addEventListener('change',function(){
		var ch=cb.getAttribute('data-ch');
		Array.prototype.forEach.call(document.querySelectorAll('.row[data-ch="'+ch+'"]'),function(row){row.classList.toggle('hidden',!cb.checked);});
		document.getElementById('visible').textContent=document.querySelectorAll('.filter:checked').length;
		api('/filter/'+encodeURIComponent(ch),{});
	});
});
setInterval(function(){
	fetch('/api/clock').then(function(r){return r.json();}).then(function(d){document.getElementById('clock').textContent=d.clock;});
},1000);
</script>
</body>
</html>

{{define "rows"}}
{{range .}}
		<div class="row" data-ch="{{.Number}}">
			<div class="chan"><div class="num">{{.Number}}</div>{{.Name}}</div>
			{{range .Cells}}<div class="cell" style="width:{{.WidthPx}}px"><div class="title">{{.Title}}</div><div class="desc">{{.Description}}</div></div>{{end}}
		</div>
{{end}}
{{end}}`
