package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetIndex GET / 画面の枠だけを返し、地図はAPIから取得して埋め込む
func GetIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

// GetHealth GET /api/health
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "FestivalMarket-App",
	})
}

const indexHTML = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Festival-Märkte</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; height: 100vh; }
#panel { width: 320px; padding: 12px; overflow-y: auto; border-right: 1px solid #ccc; }
#map { flex: 1; }
#map iframe { width: 100%; height: 100%; border: 0; }
label { display: block; margin-top: 8px; }
input { width: 100%; box-sizing: border-box; }
button { margin-top: 8px; }
li button { margin-left: 6px; }
#status { margin-top: 12px; color: #555; white-space: pre-line; }
</style>
</head>
<body>
<div id="panel">
  <h3>Festival-Standort</h3>
  <label>Adresse <input id="address" placeholder="z.B. Frankfurt am Main"></label>
  <button onclick="geocode()">Suchen</button>
  <label>Breitengrad <input id="lat" type="number" step="any"></label>
  <label>Längengrad <input id="lng" type="number" step="any"></label>
  <label>Radius (km) <input id="radius" type="number" value="40"></label>
  <label>Routenradius (km) <input id="routeRadius" type="number" step="0.5" value="2"></label>
  <h3>Suchbegriffe</h3>
  <ul id="terms"></ul>
  <input id="newTerm" placeholder="Neuer Suchbegriff">
  <button onclick="addTerm()">Hinzufügen</button>
  <button onclick="resetTerms()">Zurücksetzen</button>
  <hr>
  <button onclick="generateMap()">Karte erstellen</button>
  <button onclick="location.href='/api/export_markets'">Excel-Export</button>
  <div id="status"></div>
</div>
<div id="map"></div>
<script>
const statusBox = document.getElementById('status');

async function api(method, url, body) {
  const res = await fetch(url, {
    method: method,
    headers: {'Content-Type': 'application/json'},
    body: body ? JSON.stringify(body) : undefined
  });
  const data = await res.json();
  if (!res.ok) { throw new Error(data.error || res.statusText); }
  return data;
}

function renderTerms(terms) {
  const list = document.getElementById('terms');
  list.innerHTML = '';
  terms.forEach((term, i) => {
    const li = document.createElement('li');
    li.textContent = term;
    const del = document.createElement('button');
    del.textContent = '×';
    del.onclick = () => api('DELETE', '/api/search_terms/' + i).then(d => renderTerms(d.search_terms)).catch(showError);
    li.appendChild(del);
    list.appendChild(li);
  });
}

function showError(err) { statusBox.textContent = 'Fehler: ' + err.message; }

function geocode() {
  api('POST', '/api/geocode', {address: document.getElementById('address').value}).then(d => {
    if (d.status !== 'OK') { throw new Error('Adresse nicht gefunden (' + d.status + ')'); }
    document.getElementById('lat').value = d.lat;
    document.getElementById('lng').value = d.lng;
    statusBox.textContent = d.formatted_address;
  }).catch(showError);
}

function addTerm() {
  const input = document.getElementById('newTerm');
  api('POST', '/api/search_terms', {term: input.value}).then(d => { input.value = ''; renderTerms(d.search_terms); }).catch(showError);
}

function resetTerms() {
  api('POST', '/api/search_terms/reset').then(d => renderTerms(d.search_terms)).catch(showError);
}

function generateMap() {
  statusBox.textContent = 'Karte wird erstellt...';
  api('POST', '/api/generate_map', {
    lat: parseFloat(document.getElementById('lat').value),
    lng: parseFloat(document.getElementById('lng').value),
    radius: parseFloat(document.getElementById('radius').value),
    route_radius: parseFloat(document.getElementById('routeRadius').value)
  }).then(d => {
    const frame = document.createElement('iframe');
    frame.srcdoc = d.map;
    const box = document.getElementById('map');
    box.innerHTML = '';
    box.appendChild(frame);
    let text = d.markets_count + ' Märkte in ' + d.directions.length + ' Richtungen';
    d.skipped.forEach(s => { text += '\n' + s.direction + ': ' + s.reason; });
    statusBox.textContent = text;
  }).catch(showError);
}

api('GET', '/api/search_terms').then(d => renderTerms(d.search_terms)).catch(showError);
</script>
</body>
</html>
`
