package services

import (
	"strings"

	"github.com/fungi-kb/apiserver/types"
)

var (
	trophicModes = map[string]bool{
		types.TrophicSaprotrophic: true,
		types.TrophicMycorrhizal:  true,
		types.TrophicParasitic:    true,
		types.TrophicEndophytic:   true,
		types.TrophicLichenized:   true,
		types.TrophicMixotrophic:  true,
	}
	cultivationMethods = map[string]bool{
		types.CultivationIndoor:  true,
		types.CultivationOutdoor: true,
		types.CultivationBoth:    true,
	}
	difficultyLevels = map[string]bool{
		types.DifficultyBeginner:     true,
		types.DifficultyIntermediate: true,
		types.DifficultyAdvanced:     true,
	}
	contaminationRisks = map[string]bool{
		types.ContaminationLow:      true,
		types.ContaminationModerate: true,
		types.ContaminationHigh:     true,
		types.ContaminationVeryHigh: true,
	}
	gillTypes = map[string]bool{
		types.GillTypeGills:  true,
		types.GillTypePores:  true,
		types.GillTypeTeeth:  true,
		types.GillTypeRidges: true,
		types.GillTypeNone:   true,
	}
	resourceTypes = map[string]bool{
		types.ResourceArticle: true,
		types.ResourceBook:    true,
		types.ResourceWebsite: true,
		types.ResourceVideo:   true,
		types.ResourceJournal: true,
	}
	visibilities = map[string]bool{
		types.VisibilityPublic:     true,
		types.VisibilityPrivate:    true,
		types.VisibilityRestricted: true,
	}
)

// validateMushroom checks the document against the schema's enumerations and
// numeric bounds, and fills defaults (visibility). The document is mutated
// in place.
func validateMushroom(m *types.Mushroom) error {
	m.ScientificName = strings.TrimSpace(m.ScientificName)
	if m.ScientificName == "" {
		return &ValidationError{Field: "scientificName", Reason: "is required"}
	}

	if m.Visibility == "" {
		m.Visibility = types.VisibilityPrivate
	}
	if !visibilities[m.Visibility] {
		return &ValidationError{Field: "visibility", Reason: "must be public, private, or restricted"}
	}

	for _, mode := range m.TrophicModes {
		if !trophicModes[mode] {
			return &ValidationError{Field: "trophicModes", Reason: "unknown mode " + mode}
		}
	}

	if m.CultivationMethod != "" && !cultivationMethods[m.CultivationMethod] {
		return &ValidationError{Field: "cultivationMethod", Reason: "must be indoor, outdoor, or both"}
	}
	if m.CultivationDifficulty != nil && !difficultyLevels[m.CultivationDifficulty.Level] {
		return &ValidationError{Field: "cultivationDifficulty.level", Reason: "must be beginner, intermediate, or advanced"}
	}
	if m.ContaminationRisk != "" && !contaminationRisks[m.ContaminationRisk] {
		return &ValidationError{Field: "contaminationRisk", Reason: "must be low, moderate, high, or very_high"}
	}

	if m.SubstrateMoisture < 0 || m.SubstrateMoisture > 100 {
		return &ValidationError{Field: "substrateMoisture", Reason: "must be between 0 and 100"}
	}
	for _, ingredient := range m.SubstrateFormulation {
		if strings.TrimSpace(ingredient.Ingredient) == "" {
			return &ValidationError{Field: "substrateFormulation", Reason: "ingredient name is required"}
		}
		if ingredient.Percentage < 0 || ingredient.Percentage > 100 {
			return &ValidationError{Field: "substrateFormulation", Reason: "percentage must be between 0 and 100"}
		}
	}

	if m.Identification != nil && m.Identification.GillsOrPores != nil {
		if t := m.Identification.GillsOrPores.Type; t != "" && !gillTypes[t] {
			return &ValidationError{Field: "identification.gillsOrPores.type", Reason: "unknown type " + t}
		}
	}

	if m.Media != nil {
		for _, resource := range m.Media.Resources {
			if resource.Type != "" && !resourceTypes[resource.Type] {
				return &ValidationError{Field: "media.resources", Reason: "unknown resource type " + resource.Type}
			}
		}
	}

	return nil
}
