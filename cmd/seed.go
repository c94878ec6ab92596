/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fungi-kb/apiserver/config"
	"github.com/fungi-kb/apiserver/internal/db"
	"github.com/fungi-kb/apiserver/internal/services"
	"github.com/fungi-kb/apiserver/internal/store"
	"github.com/fungi-kb/apiserver/types"
)

// seedCmd loads a small set of sample species documents so a fresh install
// has something to browse.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample species documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		mushroomService := services.NewMushroomService(store.NewMushroomRepository(dbConn), nil, nil)

		for _, sample := range sampleMushrooms() {
			_, err := mushroomService.Create(cmd.Context(), sample, "seed")
			if err != nil {
				if errors.Is(err, services.ErrScientificNameInUse) {
					fmt.Printf("skipping %s: already present\n", sample.ScientificName)
					continue
				}
				return fmt.Errorf("seed %s failed: %w", sample.ScientificName, err)
			}
			fmt.Printf("seeded %s\n", sample.ScientificName)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func sampleMushrooms() []types.Mushroom {
	return []types.Mushroom{
		{
			ScientificName: "Pleurotus ostreatus",
			CommonNames:    []string{"Oyster mushroom", "Pearl oyster"},
			Taxonomy: &types.Taxonomy{
				Kingdom: "Fungi",
				Phylum:  "Basidiomycota",
				Class:   "Agaricomycetes",
				Order:   "Agaricales",
				Family:  "Pleurotaceae",
				Genus:   "Pleurotus",
			},
			TrophicModes: []string{types.TrophicSaprotrophic},
			Description:  "Fast colonizing wood decomposer, among the easiest species to cultivate.",
			AgarTypes: []types.AgarType{
				{Acronym: "MEA", FullName: "Malt Extract Agar"},
				{Acronym: "PDA", FullName: "Potato Dextrose Agar"},
			},
			SubstrateFormulation: []types.SubstrateIngredient{
				{Ingredient: "wheat straw", Percentage: 90},
				{Ingredient: "gypsum", Percentage: 10},
			},
			SubstrateMoisture: 65,
			Spawn: &types.Spawn{
				Type:  "grain",
				Ratio: 10,
			},
			Phases: &types.Phases{
				Colonization: &types.ColonizationPhase{
					Temperature: &types.Range{Min: 20, Max: 24, Unit: "C"},
					Humidity:    &types.Range{Min: 85, Max: 95, Unit: "%"},
				},
				Fruiting: &types.FruitingPhase{
					Induction: &types.FruitingInduction{
						TempDrop:         true,
						HumidityIncrease: true,
						AirExchange:      "high",
					},
					Temperature: &types.Range{Min: 15, Max: 21, Unit: "C"},
					Humidity:    &types.Range{Min: 85, Max: 95, Unit: "%"},
					CO2:         &types.Range{Min: 500, Max: 1000, Unit: "ppm"},
					Light:       "indirect",
					Duration:    "5-8 days",
				},
			},
			ExpectedYield:        250,
			BiologicalEfficiency: 100,
			FlushCount:           3,
			CultivationMethod:    types.CultivationBoth,
			CultivationDifficulty: &types.CultivationDifficulty{
				Level:       types.DifficultyBeginner,
				SuccessRate: 90,
			},
			ContaminationRisk: types.ContaminationLow,
			Identification: &types.Identification{
				GillsOrPores: &types.GillTraits{
					Type:       types.GillTypeGills,
					Attachment: "decurrent",
				},
				SporeColor: "white to lilac-gray",
			},
			Tags:       []string{"gourmet", "beginner"},
			IsEdible:   true,
			Visibility: types.VisibilityPublic,
		},
		{
			ScientificName: "Lentinula edodes",
			CommonNames:    []string{"Shiitake"},
			Taxonomy: &types.Taxonomy{
				Kingdom: "Fungi",
				Phylum:  "Basidiomycota",
				Class:   "Agaricomycetes",
				Order:   "Agaricales",
				Family:  "Omphalotaceae",
				Genus:   "Lentinula",
			},
			TrophicModes: []string{types.TrophicSaprotrophic},
			Description:  "Hardwood decomposer grown on supplemented sawdust blocks or logs.",
			SubstrateFormulation: []types.SubstrateIngredient{
				{Ingredient: "oak sawdust", Percentage: 80},
				{Ingredient: "wheat bran", Percentage: 18},
				{Ingredient: "gypsum", Percentage: 2},
			},
			SubstrateMoisture: 60,
			CultivationMethod: types.CultivationBoth,
			CultivationDifficulty: &types.CultivationDifficulty{
				Level:       types.DifficultyIntermediate,
				Challenges:  []string{"long colonization", "browning period"},
				SuccessRate: 75,
			},
			ContaminationRisk: types.ContaminationModerate,
			MedicinalProperties: &types.MedicinalProperties{
				IsMedicinal: true,
				BioactiveCompounds: []types.BioactiveCompound{
					{Name: "lentinan", Effects: []string{"immunomodulation"}},
				},
			},
			Tags:       []string{"gourmet", "medicinal"},
			IsEdible:   true,
			Visibility: types.VisibilityPublic,
		},
	}
}
