package sources

const limitlessPage = `<!DOCTYPE html>
<html><body>
<div class="card-page-main">
  <div class="card-image">
    <img class="card shadow" src="https://limitlesstcg.nyc3.cdn.digitaloceanspaces.com/pocket/A3b/A3b_012_EN.webp" alt="Eevee">
  </div>
  <div class="card-details">
    <p class="card-text-title">
      <span class="card-text-name"><a href="/cards/A3b/12">Eevee</a></span>
      - Colorless - 60 HP
    </p>
  </div>
  <div class="card-prints">
    <div class="card-prints-current">
      <img class="set" src="/img/A3b.webp">
      <div class="prints-current-details">
        <span class="text-lg">Eevee Grove  (A3b)</span>
        <span>#12 ·
          ◊◊ · Eevee Grove
        </span>
      </div>
    </div>
    <table class="card-prints-versions">
      <tr><th>Version</th><th>Rarity</th></tr>
      <tr class="current"><td>Standard</td><td>◊◊</td></tr>
      <tr><td>Alt</td><td>☆</td></tr>
    </table>
  </div>
</div>
</body></html>`

const limitlessPackPage = `<html><body>
<p class="card-text-title"><a href="/cards/A1/25/">Charizard ex</a></p>
<div class="card-image"><img src="/images/A1_025.webp"></div>
<div class="card-prints-current">
  <span class="text-lg">Genetic Apex (A1)</span>
  <span>#25 · ◊◊◊◊ · Charizard pack</span>
</div>
<table class="card-prints-versions"><tr class="current"><td>Standard</td><td>◊◊◊◊</td></tr></table>
</body></html>`

const pokekalosPage = `<!DOCTYPE html>
<html><body>
<h1 class="title-page">Cartodex Pocket - Puissance Génétique - Dracaufeu-ex</h1>
<center><img src="/images/jeux/pocket/cartes/A1/36.png"></center>
<div class="item flexItem">
  <span>Rareté</span>
  <img class="carte_rarete" src="/images/icones/diamant.png">
  <img class="carte_rarete" src="/images/icones/diamant.png">
  <img class="carte_rarete" src="/images/icones/diamant.png">
  <img class="carte_rarete" src="/images/icones/diamant.png">
</div>
<ul style="margin-top: .5em;">
  <li><a href="/boosters/dracaufeu">Puissance Génétique Dracaufeu</a></li>
</ul>
</body></html>`

const pokekalosMultiPackPage = `<html><body>
<h1 class="title-page">Cartodex Pocket - Puissance Génétique - Pikachu</h1>
<center><img src="https://cdn.pokekalos.fr/A1/94.png"></center>
<div class="item flexItem">
  <img class="carte_icone" src="/images/icones/etoile.png">
  <img class="carte_icone" src="/images/icones/etoile.png">
</div>
<ul style="margin-top: .5em;">
  <li><a href="#">Puissance Génétique Pikachu</a></li>
  <li><a href="#">Puissance Génétique Mewtwo</a></li>
</ul>
</body></html>`

const pokekalosCrownPage = `<html><body>
<h1 class="title-page">Mewtwo-ex</h1>
<div class="item flexItem"><img class="carte_rarete" src="/img/couronne.png"></div>
</body></html>`

const pokekalosPromoPage = `<html><body>
<h1 class="title-page">Cartodex Pocket - Promo-A - Pikachu</h1>
<center><img src="/promo/9.png"></center>
<div class="item flexItem"><img class="carte_rarete" src="/img/diamant.png"></div>
</body></html>`
