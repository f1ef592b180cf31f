package panel

// ── Styling ───────────────────────────────────────────────────────────────────

// styleHTML is emitted once in the page head. Category panels are selected
// by a class named after the category, which the toggle script and any
// external styling rely on.
const styleHTML = `<style>
#debug-container{position:fixed;bottom:28px;right:8px;width:480px;max-height:70vh;overflow-y:auto;background:#0d1117;color:#c9d1d9;border:1px solid #30363d;border-radius:6px;font-family:monospace;font-size:12px;line-height:1.5;z-index:99998;padding:4px 0}
#debug-container .debug-panel{border-bottom:1px solid #21262d;padding:4px 10px}
#debug-container .debug-panel h3{font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;margin:4px 0}
#debug-container .debug-event{border-left:2px solid #30363d;margin:6px 0;padding:2px 8px}
#debug-container .debug-panel.errors .debug-event{border-left-color:#f87171}
#debug-container .debug-panel.warnings .debug-event{border-left-color:#f59e0b}
#debug-container .debug-panel.notices .debug-event{border-left-color:#58a6ff}
#debug-container .debug-panel.dumps .debug-event{border-left-color:#56d364}
#debug-container .debug-flag{font-weight:700;margin-right:6px}
#debug-container .debug-panel.errors .debug-flag{color:#f87171}
#debug-container .debug-panel.warnings .debug-flag{color:#f59e0b}
#debug-container .debug-panel.notices .debug-flag{color:#58a6ff}
#debug-container .debug-panel.dumps .debug-flag{color:#56d364}
#debug-container .debug-time{color:#8b949e}
#debug-container pre.debug-message{white-space:pre-wrap;word-break:break-all;margin:2px 0;color:#c9d1d9}
#debug-container .debug-details{font-size:11px;color:#8b949e}
#debug-container .debug-details .debug-type{color:#d2a8ff;margin-right:8px}
#debug-errors{position:fixed;bottom:4px;right:8px;font-family:monospace;font-size:12px;z-index:99999}
#debug-errors .debug-total{display:inline-block;min-width:18px;text-align:center;padding:1px 7px;border-radius:10px;font-weight:700;color:#0d1117;cursor:pointer;text-decoration:none}
#debug-errors.error .debug-total{background:#f87171}
#debug-errors.warning .debug-total{background:#f59e0b}
#debug-errors.notice .debug-total{background:#58a6ff}
#debug-errors.dumps .debug-total{background:#56d364}
#debug-errors ul{display:inline;list-style:none;margin:0;padding:0}
#debug-errors li{display:inline;margin-left:8px}
#debug-errors li a{color:#8b949e;text-decoration:none;cursor:pointer}
#debug-errors li a:hover{color:#c9d1d9}
</style>
`

// ── Client toggle script ──────────────────────────────────────────────────────

// scriptHTML implements the visibility protocol in the browser. The
// transitions mirror Visibility.ToggleAll and Visibility.ToggleOne exactly;
// change both together.
const scriptHTML = `<script>
(function () {
	function container() { return document.getElementById('debug-container'); }
	function panels(c) { return c.querySelectorAll('.debug-panel'); }
	window.debugToggleAll = function () {
		var c = container();
		if (!c) return;
		if (c.style.display === 'none') {
			c.style.display = 'block';
			panels(c).forEach(function (p) { p.style.display = 'block'; });
		} else {
			c.style.display = 'none';
		}
	};
	window.debugToggleOne = function (category) {
		var c = container();
		if (!c) return;
		c.style.display = 'block';
		var all = panels(c);
		var target = c.querySelector('.debug-panel.' + category);
		var visible = [];
		all.forEach(function (p) { if (p.style.display !== 'none') visible.push(p); });
		if (visible.length === 1 && visible[0] === target) {
			all.forEach(function (p) { p.style.display = 'block'; });
		} else {
			all.forEach(function (p) { p.style.display = (p === target) ? 'block' : 'none'; });
		}
	};
})();
</script>
`

// ── Markup templates ──────────────────────────────────────────────────────────

const indicatorTmpl = `<div id="debug-errors" class="debug-indicator {{.Class}}">` +
	`<a href="#" class="debug-total" onclick="debugToggleAll(); return false;">{{.Total}}</a>` +
	`<ul>` +
	`{{range .Entries}}<li class="{{.Category}}"><a href="#" onclick="debugToggleOne('{{.Category}}'); return false;">{{.Label}} ({{.Count}})</a></li>{{end}}` +
	`</ul>` +
	`</div>
`

const panelsTmpl = `<div id="debug-container" style="display:none">
{{range .Panels}}<div class="debug-panel {{.Category}}">
<h3>{{.Label}} ({{.Count}})</h3>
{{$flag := .Flag}}{{range .Events}}<div class="debug-event">
<span class="debug-flag">{{$flag}}</span><span class="debug-time">{{.Timestamp}}</span>
<pre class="debug-message">{{.Message}}</pre>
<div class="debug-details">{{if .Type}}<span class="debug-type">{{.Type}}</span>{{end}}{{if .File}}<span class="debug-file">{{.File}}{{if .Line}} on line {{.Line}}{{end}}</span>{{end}}</div>
</div>
{{end}}</div>
{{end}}</div>
`
