package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Contents(t *testing.T) {
	c := Default()

	props := c.Properties()
	require.Len(t, props, 35)

	var properties, features int
	for _, p := range props {
		switch p.Kind {
		case KindProperty:
			properties++
		case KindFeature:
			features++
		}
	}
	assert.Equal(t, 12, properties)
	assert.Equal(t, 23, features)

	ashift, ok := c.Lookup("ashift")
	require.True(t, ok)
	assert.Equal(t, KindFeature, ashift.Kind)
	assert.Equal(t, "12", ashift.Default)
	assert.Equal(t, "linux", ashift.OSFamily)
	assert.True(t, ashift.Compatible)
	assert.Nil(t, ashift.ReadOnly)

	embedded, ok := c.Lookup("feature@embedded_data")
	require.True(t, ok)
	require.NotNil(t, embedded.ReadOnly)
	assert.False(t, *embedded.ReadOnly)

	multihost, ok := c.Lookup("multihost")
	require.True(t, ok)
	assert.Equal(t, []Mode{ModeImport}, multihost.Modes)
}

func TestDefault_RaidProfiles(t *testing.T) {
	want := []RaidProfile{
		{Name: "Stripe", MinDevices: 1, Token: ""},
		{Name: "Mirror", MinDevices: 2, Token: "mirror"},
		{Name: "RAID-Z L1", MinDevices: 3, Token: "raidz"},
		{Name: "RAID-Z L2", MinDevices: 4, Token: "raidz2"},
		{Name: "RAID-Z L3", MinDevices: 5, Token: "raidz3"},
	}
	assert.Equal(t, want, Default().RaidProfiles())

	rp, ok := Default().RaidProfile("Mirror")
	require.True(t, ok)
	assert.Equal(t, "mirror", rp.Token)

	_, ok = Default().RaidProfile("mirror")
	assert.False(t, ok, "profile lookup is by display name")
}

func TestDefault_PropertiesNeverEmitByDefault(t *testing.T) {
	for _, p := range Default().Properties() {
		if p.Kind != KindProperty {
			continue
		}
		assert.Falsef(t, p.ShouldEmit(), "default for %s (%q) should be a sentinel", p.Name, p.Default)
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()

	props := c.Properties()
	props[0].Default = "mutated"
	props[0].Modes[0] = ModeSet

	again, ok := c.Lookup(props[0].Name)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", again.Default)
	assert.NotEqual(t, ModeSet, again.Modes[0])

	feat, _ := c.Lookup("feature@bookmarks")
	*feat.ReadOnly = false
	feat2, _ := c.Lookup("feature@bookmarks")
	assert.True(t, *feat2.ReadOnly)

	profiles := c.RaidProfiles()
	profiles[0].Token = "bogus"
	assert.Equal(t, "", c.RaidProfiles()[0].Token)
}

func TestCatalog_Filters(t *testing.T) {
	c := Default()

	for _, p := range c.ByMode(ModeSet) {
		assert.True(t, p.AppliesTo(ModeSet), p.Name)
	}
	assert.Len(t, c.ByMode(ModeSet), 7)

	linux := c.ByOSFamily("linux")
	assert.Len(t, linux, 18)
	for _, p := range linux {
		assert.Equal(t, KindFeature, p.Kind)
	}
	assert.Len(t, c.ByOSFamily("solaris"), 5)
	assert.Empty(t, c.ByOSFamily("freebsd"))
	assert.Len(t, c.Features(), 23)
}

func TestProperty_ShouldEmit(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		want bool
	}{
		{name: "empty", prop: Property{Default: ""}, want: false},
		{name: "off", prop: Property{Default: "off"}, want: false},
		{name: "wait", prop: Property{Default: "wait"}, want: false},
		{name: "zero", prop: Property{Default: "0"}, want: false},
		{name: "on", prop: Property{Default: "on"}, want: true},
		{name: "panic", prop: Property{Default: "panic"}, want: true},
		{
			name: "own omit list replaces sentinels",
			prop: Property{Default: "wait", OmitWhen: []string{"continue"}},
			want: true,
		},
		{
			name: "own omit list matches",
			prop: Property{Default: "continue", OmitWhen: []string{"continue"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prop.ShouldEmit())
		})
	}
}

func TestProperty_AutoEnable(t *testing.T) {
	base := Property{Name: "feature@x", Kind: KindFeature, Default: FeatureEnabled, OSFamily: "linux", Compatible: true}

	assert.True(t, base.AutoEnable("linux"))

	other := base
	other.OSFamily = "solaris"
	assert.False(t, other.AutoEnable("linux"))
	assert.False(t, other.AutoEnable("solaris"), "solaris is not a supported family")

	incompatible := base
	incompatible.Compatible = false
	assert.False(t, incompatible.AutoEnable("linux"))

	disabled := base
	disabled.Default = "disabled"
	assert.False(t, disabled.AutoEnable("linux"))

	prop := base
	prop.Kind = KindProperty
	assert.False(t, prop.AutoEnable("linux"))
}

func TestCatalog_WithValues(t *testing.T) {
	c := Default()

	out, err := c.WithValues(map[string]string{"autoexpand": "on", "feature@sha512": "enabled"})
	require.NoError(t, err)
	require.Len(t, out, len(c.Properties()))

	byName := map[string]Property{}
	for _, p := range out {
		byName[p.Name] = p
	}
	assert.Equal(t, "on", byName["autoexpand"].Default)
	assert.Equal(t, "enabled", byName["feature@sha512"].Default)
	assert.Equal(t, "off", byName["readonly"].Default)

	orig, _ := c.Lookup("autoexpand")
	assert.Equal(t, "off", orig.Default, "catalog must not change")

	noValues, err := c.WithValues(nil)
	require.NoError(t, err)
	assert.Equal(t, c.Properties(), noValues)

	_, err = c.WithValues(map[string]string{"nosuch": "x"})
	assert.ErrorContains(t, err, "unknown property")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown field",
			yaml: "properties: []\nraidProfiles: [{name: a, minDevices: 1}]\nextra: 1\n",
		},
		{
			name: "no profiles",
			yaml: "properties: []\n",
		},
		{
			name: "bad kind",
			yaml: "properties: [{name: a, kind: knob, modes: [create]}]\nraidProfiles: [{name: s, minDevices: 1}]\n",
		},
		{
			name: "bad mode",
			yaml: "properties: [{name: a, kind: property, modes: [destroy]}]\nraidProfiles: [{name: s, minDevices: 1}]\n",
		},
		{
			name: "no modes",
			yaml: "properties: [{name: a, kind: property}]\nraidProfiles: [{name: s, minDevices: 1}]\n",
		},
		{
			name: "feature without os",
			yaml: "properties: [{name: f, kind: feature, modes: [create]}]\nraidProfiles: [{name: s, minDevices: 1}]\n",
		},
		{
			name: "duplicate property",
			yaml: "properties: [{name: a, kind: property, modes: [set]}, {name: a, kind: property, modes: [set]}]\nraidProfiles: [{name: s, minDevices: 1}]\n",
		},
		{
			name: "zero min devices",
			yaml: "properties: []\nraidProfiles: [{name: s, minDevices: 0}]\n",
		},
		{
			name: "duplicate profile",
			yaml: "properties: []\nraidProfiles: [{name: s, minDevices: 1}, {name: s, minDevices: 2}]\n",
		},
		{
			name: "not yaml",
			yaml: "properties: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestIsSupportedOSFamily(t *testing.T) {
	assert.True(t, IsSupportedOSFamily("linux"))
	assert.False(t, IsSupportedOSFamily("solaris"))
	assert.False(t, IsSupportedOSFamily(""))
}
