package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLegacyMission(t *testing.T) {
	a := AboutContent{
		Mission: AboutListSection{Title: "Our Mission", Content: "Show Bhutan honestly."},
	}

	changed := a.NormalizeLegacy()

	assert.True(t, changed)
	assert.Len(t, a.Mission.Items, 1)
	assert.Equal(t, "Our Mission", a.Mission.Items[0].Title)
	assert.Equal(t, "Show Bhutan honestly.", a.Mission.Items[0].Description)
}

func TestNormalizeLegacyLeavesCurrentShapeAlone(t *testing.T) {
	a := AboutContent{
		Mission:     AboutListSection{Title: "Mission", Items: []AboutItem{{Title: "a"}, {Title: "b"}}},
		Sustainable: AboutListSection{},
	}

	assert.False(t, a.NormalizeLegacy())
	assert.Len(t, a.Mission.Items, 2)
	assert.Nil(t, a.Sustainable.Items)
}

func TestMergeDefaultsFillsEmptyFields(t *testing.T) {
	def := DefaultAboutContent()
	stored := AboutContent{
		Hero: AboutSection{Title: "Custom hero"},
	}

	merged := stored.MergeDefaults(def)

	assert.Equal(t, "Custom hero", merged.Hero.Title)
	assert.Equal(t, def.Hero.Subtitle, merged.Hero.Subtitle)
	assert.Equal(t, def.Story, merged.Story)
	assert.Equal(t, def.Mission.Items, merged.Mission.Items)
	assert.Equal(t, AboutDocumentID, merged.ID)
}

func TestMergeDefaultsKeepsStoredItems(t *testing.T) {
	stored := AboutContent{
		Sustainable: AboutListSection{Items: []AboutItem{{Title: "Only one"}}},
	}

	merged := stored.MergeDefaults(DefaultAboutContent())

	assert.Equal(t, []AboutItem{{Title: "Only one"}}, merged.Sustainable.Items)
	assert.Equal(t, "High Value, Low Impact", merged.Sustainable.Title)
}

func TestMergeDefaultsDoesNotShareDefaultItems(t *testing.T) {
	def := DefaultAboutContent()
	merged := AboutContent{}.MergeDefaults(def)
	merged.Mission.Items[0].Title = "changed"

	assert.NotEqual(t, "changed", def.Mission.Items[0].Title)
}
