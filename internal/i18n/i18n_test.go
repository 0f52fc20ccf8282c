package i18n

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateMissingKeyReturnsKey(t *testing.T) {
	l := New("en")
	assert.Equal(t, "nonexistent_key", l.Translate("nonexistent_key"))
}

func TestTranslateActiveLanguage(t *testing.T) {
	l := New("en")
	assert.Equal(t, "Balance", l.Translate(KeyBalance))

	assert.Equal(t, "es", l.SetLanguage("es"))
	assert.Equal(t, "Saldo", l.Translate(KeyBalance))
	assert.Equal(t, "es", l.Language())
}

func TestSetLanguageFallsBackToDefault(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"es", "es"},
		{"ES", "es"},
		{"es-MX", "es"},
		{"en-GB", "en"},
		{"de", "en"},
		{"gl", "en"},
		{"ca", "en"},
		{"pt-BR", "en"},
		{"es-419", "es"},
		{"", "en"},
		{"!!not a tag", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			l := New("en")
			assert.Equal(t, tt.want, l.SetLanguage(tt.code))
			assert.Equal(t, tt.want, l.Language())
		})
	}
}

func TestConfiguredDefaultIsTheFallback(t *testing.T) {
	l := New("es")
	l.SetLanguage("en")
	assert.Equal(t, "es", l.SetLanguage("de"))
}

func TestNewWithUnsupportedDefault(t *testing.T) {
	l := New("klingon")
	assert.Equal(t, DefaultLanguage, l.Language())
}

func TestEmptyValueFallsBackToKey(t *testing.T) {
	l := NewWithTables("en", map[string]map[string]string{
		"en": {"greeting": "", "farewell": "Bye"},
	})
	assert.Equal(t, "greeting", l.Translate("greeting"))
	assert.Equal(t, "Bye", l.Translate("farewell"))
}

func TestTablesHaveSameKeys(t *testing.T) {
	for code, table := range builtinTables {
		for key := range builtinTables[DefaultLanguage] {
			assert.NotEmpty(t, table[key], "%s is missing %s", code, key)
		}
	}
}

func TestSupported(t *testing.T) {
	l := New("en")
	assert.Equal(t, []string{"en", "es"}, l.Supported())
}

func TestConcurrentReadersSeeOneLanguage(t *testing.T) {
	l := New("en")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l.SetLanguage("es")
		}()
		go func() {
			defer wg.Done()
			got := l.Translate(KeyBalance)
			assert.Contains(t, []string{"Balance", "Saldo"}, got)
		}()
	}
	wg.Wait()
	assert.Equal(t, "es", l.Language())
}
