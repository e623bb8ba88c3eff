package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Reçu":           "recu",
		"MATÉRIAUX":      "materiaux",
		"Épicerie Métro": "epicerie metro",
		"déjà plié":      "deja plie",
		"plain ascii":    "plain ascii",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Fold(in), "input %q", in)
	}
}

func TestFold_SafeForConcurrentUse(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				assert.Equal(t, "cafe depot", Fold("Café Dépôt"))
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
