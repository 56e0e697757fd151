package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pocket-cards/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePokekalos(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		promo bool
		want  reconcile.RawCard
	}{
		{
			name: "Diamonds and single pack",
			html: pokekalosPage,
			want: reconcile.RawCard{
				Name:       "Dracaufeu-ex",
				ImageURL:   "https://www.pokekalos.fr/images/jeux/pocket/cartes/A1/36.png",
				RarityText: "◊◊◊◊",
				PackText:   "Puissance Génétique Dracaufeu",
			},
		},
		{
			name: "Stars and several packs",
			html: pokekalosMultiPackPage,
			want: reconcile.RawCard{
				Name:       "Pikachu",
				ImageURL:   "https://cdn.pokekalos.fr/A1/94.png",
				RarityText: "☆☆",
				PackText:   "Puissance Génétique Pikachu | Puissance Génétique Mewtwo",
			},
		},
		{
			name: "Crown without pack list",
			html: pokekalosCrownPage,
			want: reconcile.RawCard{
				Name:       "Mewtwo-ex",
				RarityText: "Crown Rare",
			},
		},
		{
			name:  "Promo has no rarity",
			html:  pokekalosPromoPage,
			promo: true,
			want: reconcile.RawCard{
				Name:     "Pikachu",
				ImageURL: "https://www.pokekalos.fr/promo/9.png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePokekalos([]byte(tt.html), "https://www.pokekalos.fr/jeux/mobile/pocket/cartodex/extensions/x/cartes/1.html", tt.promo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePokekalos_NoTitle(t *testing.T) {
	_, err := ParsePokekalos([]byte("<html><body></body></html>"), "https://x", false)
	assert.Error(t, err)
}

func TestPokekalos_PageURL(t *testing.T) {
	src := NewPokekalos(nil)

	assert.Equal(t,
		"https://www.pokekalos.fr/jeux/mobile/pocket/cartodex/extensions/la-clairiere-d-evoli/cartes/12.html",
		src.PageURL(reconcile.SetDefinition{Code: "A3b", Slug: "la-clairiere-d-evoli"}, 12))
	assert.Equal(t,
		"https://www.pokekalos.fr/jeux/mobile/pocket/cartodex/extensions/promo-a/cartes/9.html",
		src.PageURL(reconcile.SetDefinition{Code: "PA", Slug: "promo-a", Promo: true}, 9))
}

func TestPokekalos_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/extensions/puissance-genetique/cartes/36.html" {
			_, _ = w.Write([]byte(pokekalosPage))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewPokekalos(NewFetcher(Config{DelayMillis: 0}, 0))
	src.baseURL = srv.URL + "/extensions/"
	set := reconcile.SetDefinition{Code: "A1", DisplayName: "Genetic Apex", Slug: "puissance-genetique", MaxCardCount: 286}

	raw, err := src.Extract(context.Background(), set, 36)
	require.NoError(t, err)
	assert.Equal(t, 36, raw.LocalNumber)
	assert.Equal(t, "Genetic Apex (A1)", raw.SetDetails)
	assert.Equal(t, srv.URL+"/images/jeux/pocket/cartes/A1/36.png", raw.ImageURL)

	_, err = src.Extract(context.Background(), set, 37)
	assert.Error(t, err)
}
