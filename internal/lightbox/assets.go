package lightbox

// overlayTemplate is the dialog appended to the body of the gallery page.
const overlayTemplate = `<div id="lb" role="dialog" aria-modal="true" style="display:{{if .Open}}block{{else}}none{{end}}{{if .Width}};--w:{{.Width}}{{end}}">
  <div class="lb-backdrop"></div>
  <figure class="lb-figure">
    <img id="lb-img" alt="Gallery plate"{{if .Src}} src="{{.Src}}"{{end}}/>
    <figcaption id="lb-cap">{{.Caption}}</figcaption>
    <button class="lb-close" aria-label="Close">×</button>
    <button class="lb-prev" aria-label="Previous plate">‹</button>
    <button class="lb-next" aria-label="Next plate">›</button>
  </figure>
</div>`

// Styles is the lightbox stylesheet, shared by every theme.
const Styles = `
#lb{position:fixed; inset:0; z-index:1000}
#lb .lb-backdrop{position:absolute; inset:0; background:rgba(0,0,0,.75);}
#lb .lb-figure{position:absolute; inset:6% 6%; display:grid; grid-template-rows: 1fr auto; align-items:center; justify-items:center; gap:12px}
#lb img{max-width:100%; max-height:100%; border-radius:12px; box-shadow:0 12px 40px rgba(0,0,0,.6)}
#lb figcaption{color:#e6eef9; font: 14px/1.4 system-ui,Segoe UI,Roboto; text-align:center}
#lb .lb-close, #lb .lb-prev, #lb .lb-next{
  position:absolute; top:10px; width:40px; height:40px; border-radius:999px; border:none;
  color:#e6eef9; background:rgba(255,255,255,.12); cursor:pointer; font-size:22px;
  display:flex; align-items:center; justify-content:center; box-shadow:0 2px 12px rgba(0,0,0,.35);
}
#lb .lb-close{right:10px}
#lb .lb-prev{left:10px; top:calc(50% - 20px)}
#lb .lb-next{right:10px; top:calc(50% - 20px)}
#lb .lb-close:hover, #lb .lb-prev:hover, #lb .lb-next:hover{background:rgba(255,255,255,.18)}
`

// Script drives the overlay in the browser. It reads the plates from the
// #lb-data JSON island written by the gallery page and applies the same
// transitions as Lightbox.
const Script = `(function () {
  'use strict';

  var overlay = document.getElementById('lb');
  var island = document.getElementById('lb-data');
  if (!overlay || !island) return;

  var items = [];
  try {
    items = JSON.parse(island.textContent || '[]') || [];
  } catch (e) {
    console.warn('Codex plates not loaded:', e);
    return;
  }

  var img = document.getElementById('lb-img');
  var cap = document.getElementById('lb-cap');
  var idx = 0;

  function escapeHtml(s) {
    return (s || '').replace(/[&<>"']/g, function (m) {
      return { '&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;' }[m];
    });
  }

  function isOpen() { return overlay.style.display === 'block'; }

  function show(n) {
    if (!items.length) return;
    idx = ((n % items.length) + items.length) % items.length;
    var it = items[idx];
    img.src = it.src;
    img.onload = function () { overlay.style.setProperty('--w', img.naturalWidth || 0); };
    cap.innerHTML = '<strong>' + escapeHtml(it.title) + '</strong>' +
      (it.caption ? ' — ' + escapeHtml(it.caption) : '');
  }

  function open(n) {
    if (!items.length) return;
    show(n);
    overlay.style.display = 'block';
    document.documentElement.style.overflow = 'hidden';
  }

  function close() {
    overlay.style.display = 'none';
    document.documentElement.style.overflow = '';
  }

  function next() { show(idx + 1); }
  function prev() { show(idx - 1); }

  overlay.querySelector('.lb-close').addEventListener('click', close);
  overlay.querySelector('.lb-backdrop').addEventListener('click', close);
  overlay.querySelector('.lb-next').addEventListener('click', next);
  overlay.querySelector('.lb-prev').addEventListener('click', prev);

  Array.prototype.forEach.call(document.querySelectorAll('a.card[data-index]'), function (card) {
    card.addEventListener('click', function (e) {
      e.preventDefault();
      open(parseInt(card.getAttribute('data-index'), 10) || 0);
    });
  });

  window.addEventListener('keydown', function (e) {
    if (!isOpen()) return;
    if (e.key === 'Escape') close();
    if (e.key === 'ArrowRight') next();
    if (e.key === 'ArrowLeft') prev();
  });
})();
`
