package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/menrva/internal/forms"
)

func TestNewDefaultRegistry_HasTermsSelect(t *testing.T) {
	r := forms.NewDefaultRegistry()

	got, ok := r.Lookup("bootstrapDecorator", "termsselect")

	require.True(t, ok)
	assert.Equal(t, "/static/templates/deposit-form/termsselect.html", got.TemplatePath)
}

func TestRegistry_Lookup_Unknown(t *testing.T) {
	r := forms.NewRegistry()

	_, ok := r.Lookup("bootstrapDecorator", "termsselect")

	assert.False(t, ok)
}

func TestRegistry_Register_OverwritesPath(t *testing.T) {
	r := forms.NewRegistry()
	d := r.Decorator("bootstrapDecorator")

	d.Register("termsselect", "/old.html")
	d.Register("termsselect", "/new.html")

	got, ok := r.Lookup("bootstrapDecorator", "termsselect")
	require.True(t, ok)
	assert.Equal(t, "/new.html", got.TemplatePath)
	assert.Len(t, r.List(), 1)
}

func TestRegistry_List_Sorted(t *testing.T) {
	r := forms.NewRegistry()
	r.DefineAddOn("z", "b", "/zb.html")
	r.DefineAddOn("a", "y", "/ay.html")
	r.DefineAddOn("a", "x", "/ax.html")

	got := r.List()

	require.Len(t, got, 3)
	assert.Equal(t, forms.AddOn{Decorator: "a", Name: "x", TemplatePath: "/ax.html"}, got[0])
	assert.Equal(t, forms.AddOn{Decorator: "a", Name: "y", TemplatePath: "/ay.html"}, got[1])
	assert.Equal(t, forms.AddOn{Decorator: "z", Name: "b", TemplatePath: "/zb.html"}, got[2])
}

func TestRegistry_SameNameDifferentDecorators(t *testing.T) {
	r := forms.NewRegistry()
	r.DefineAddOn("bootstrapDecorator", "termsselect", "/bs.html")
	r.DefineAddOn("materialDecorator", "termsselect", "/md.html")

	bs, _ := r.Lookup("bootstrapDecorator", "termsselect")
	md, _ := r.Lookup("materialDecorator", "termsselect")

	assert.Equal(t, "/bs.html", bs.TemplatePath)
	assert.Equal(t, "/md.html", md.TemplatePath)
}
