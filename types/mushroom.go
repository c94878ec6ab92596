package types

import "time"

// Enumerated values used across the mushroom document. Unknown values are
// rejected by the service-layer validation, not by the database.
const (
	TrophicSaprotrophic = "saprotrophic"
	TrophicMycorrhizal  = "mycorrhizal"
	TrophicParasitic    = "parasitic"
	TrophicEndophytic   = "endophytic"
	TrophicLichenized   = "lichenized"
	TrophicMixotrophic  = "mixotrophic"

	CultivationIndoor  = "indoor"
	CultivationOutdoor = "outdoor"
	CultivationBoth    = "both"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	ContaminationLow      = "low"
	ContaminationModerate = "moderate"
	ContaminationHigh     = "high"
	ContaminationVeryHigh = "very_high"

	GillTypeGills  = "gills"
	GillTypePores  = "pores"
	GillTypeTeeth  = "teeth"
	GillTypeRidges = "ridges"
	GillTypeNone   = "none"

	ResourceArticle = "article"
	ResourceBook    = "book"
	ResourceWebsite = "website"
	ResourceVideo   = "video"
	ResourceJournal = "journal"

	VisibilityPublic     = "public"
	VisibilityPrivate    = "private"
	VisibilityRestricted = "restricted"
)

// Mushroom is a single species document in the knowledge base. It collects
// taxonomy, cultivation parameters, identification traits, and usage data.
// Everything beyond the key columns is persisted as one JSON document.
type Mushroom struct {
	// ID is the unique identifier of the document, a UUID string assigned
	// on creation.
	ID string `json:"id" db:"id"`

	// ScientificName is the binomial name of the species. It is required
	// and unique across the knowledge base.
	ScientificName string `json:"scientificName" db:"scientific_name"`

	// CommonNames lists vernacular names for the species.
	CommonNames []string `json:"commonNames,omitempty"`

	Taxonomy     *Taxonomy `json:"taxonomy,omitempty"`
	TrophicModes []string  `json:"trophicModes,omitempty"`
	Description  string    `json:"description,omitempty"`
	Distribution string    `json:"distribution,omitempty"`

	// AgarTypes lists culture media the species grows on.
	AgarTypes []AgarType `json:"agarTypes,omitempty"`

	// SubstrateFormulation is the bulk substrate recipe as ingredient
	// percentages.
	SubstrateFormulation []SubstrateIngredient `json:"substrateFormulation,omitempty"`

	// SubstrateMoisture is the target substrate moisture in percent.
	SubstrateMoisture float64 `json:"substrateMoisture,omitempty"`

	Spawn  *Spawn  `json:"spawn,omitempty"`
	Phases *Phases `json:"phases,omitempty"`

	// ExpectedYield is grams of fresh fruit per kilogram of substrate.
	ExpectedYield float64 `json:"expectedYield,omitempty"`

	// BiologicalEfficiency is the yield as a percentage of dry substrate mass.
	BiologicalEfficiency float64 `json:"biologicalEfficiency,omitempty"`

	FlushCount            int                    `json:"flushCount,omitempty"`
	CultivationMethod     string                 `json:"cultivationMethod,omitempty"`
	CultivationDifficulty *CultivationDifficulty `json:"cultivationDifficulty,omitempty"`
	ContaminationRisk     string                 `json:"contaminationRisk,omitempty"`
	Lifecycle             *Lifecycle             `json:"lifecycle,omitempty"`
	Identification        *Identification        `json:"identification,omitempty"`
	LookAlikes            []LookAlike            `json:"lookAlikes,omitempty"`
	Seasonality           *Seasonality           `json:"seasonality,omitempty"`
	MedicinalProperties   *MedicinalProperties   `json:"medicinalProperties,omitempty"`
	CulinaryUses          *CulinaryUses          `json:"culinaryUses,omitempty"`
	Storage               *StorageInfo           `json:"storage,omitempty"`
	CommercialData        *CommercialData        `json:"commercialData,omitempty"`
	Sustainability        *Sustainability        `json:"sustainability,omitempty"`
	Media                 *Media                 `json:"media,omitempty"`

	Tags           []string `json:"tags,omitempty"`
	IsEdible       bool     `json:"isEdible,omitempty"`
	IsPoisonous    bool     `json:"isPoisonous,omitempty"`
	IsPsychoactive bool     `json:"isPsychoactive,omitempty"`

	// CreatedBy records the name of the user that created the document, as
	// carried in the access token claims.
	CreatedBy string `json:"createdBy,omitempty" db:"created_by"`

	// Verified marks documents reviewed by an admin.
	Verified bool `json:"verified,omitempty" db:"verified"`

	// Visibility controls who may read the document: "public", "private",
	// or "restricted". Defaults to "private".
	Visibility  string   `json:"visibility,omitempty" db:"visibility"`
	AccessRoles []string `json:"accessRoles,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Taxonomy is the Linnaean classification of the species.
type Taxonomy struct {
	Kingdom string `json:"kingdom,omitempty"`
	Phylum  string `json:"phylum,omitempty"`
	Class   string `json:"class,omitempty"`
	Order   string `json:"order,omitempty"`
	Family  string `json:"family,omitempty"`
	Genus   string `json:"genus,omitempty"`
}

type AgarType struct {
	Acronym     string `json:"acronym"`
	FullName    string `json:"fullName"`
	Description string `json:"description,omitempty"`
}

type SubstrateIngredient struct {
	Ingredient string  `json:"ingredient"`
	Percentage float64 `json:"percentage"`
}

type Spawn struct {
	Type                string  `json:"type,omitempty"`
	Ratio               float64 `json:"ratio,omitempty"`
	SterilizationMethod string  `json:"sterilizationMethod,omitempty"`
	CoolingTemp         float64 `json:"coolingTemp,omitempty"`
}

// Range is a bounded measurement with its unit, e.g. {20, 24, "C"}.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// Phases describes the colonization and fruiting environment parameters.
type Phases struct {
	Colonization *ColonizationPhase `json:"colonization,omitempty"`
	Fruiting     *FruitingPhase     `json:"fruiting,omitempty"`
}

type ColonizationPhase struct {
	Temperature *Range `json:"temperature,omitempty"`
	Humidity    *Range `json:"humidity,omitempty"`
}

type FruitingPhase struct {
	Induction   *FruitingInduction `json:"induction,omitempty"`
	Temperature *Range             `json:"temperature,omitempty"`
	Humidity    *Range             `json:"humidity,omitempty"`
	CO2         *Range             `json:"co2,omitempty"`
	Light       string             `json:"light,omitempty"`
	Duration    string             `json:"duration,omitempty"`
}

// FruitingInduction lists the environmental changes that trigger pinning.
type FruitingInduction struct {
	TempDrop         bool   `json:"tempDrop,omitempty"`
	HumidityIncrease bool   `json:"humidityIncrease,omitempty"`
	LightChange      string `json:"lightChange,omitempty"`
	AirExchange      string `json:"airExchange,omitempty"`
}

type CultivationDifficulty struct {
	Level       string   `json:"level"`
	Challenges  []string `json:"challenges,omitempty"`
	SuccessRate float64  `json:"successRate,omitempty"`
}

type Lifecycle struct {
	SporeGermination *SporeGermination `json:"sporeGermination,omitempty"`
	MyceliumGrowth   *MyceliumGrowth   `json:"myceliumGrowth,omitempty"`
	PinningTriggers  []string          `json:"pinningTriggers,omitempty"`
	MaturationTime   string            `json:"maturationTime,omitempty"`
}

type SporeGermination struct {
	Temperature *Range   `json:"temperature,omitempty"`
	Medium      []string `json:"medium,omitempty"`
	Timeframe   string   `json:"timeframe,omitempty"`
}

type MyceliumGrowth struct {
	Rate            string   `json:"rate,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// Identification collects the macroscopic traits used to recognize the
// species in the field.
type Identification struct {
	Cap                     *CapTraits  `json:"cap,omitempty"`
	Stem                    *StemTraits `json:"stem,omitempty"`
	GillsOrPores            *GillTraits `json:"gillsOrPores,omitempty"`
	SporeColor              string      `json:"sporeColor,omitempty"`
	KeyFeatures             []string    `json:"keyFeatures,omitempty"`
	BruisingCharacteristics string      `json:"bruisingCharacteristics,omitempty"`
}

type CapTraits struct {
	Shape    []string `json:"shape,omitempty"`
	Color    []string `json:"color,omitempty"`
	Diameter *Range   `json:"diameter,omitempty"`
	Surface  []string `json:"surface,omitempty"`
}

type StemTraits struct {
	Height    *Range   `json:"height,omitempty"`
	Thickness *Range   `json:"thickness,omitempty"`
	Color     []string `json:"color,omitempty"`
	Features  []string `json:"features,omitempty"`
}

type GillTraits struct {
	Type       string   `json:"type,omitempty"`
	Attachment string   `json:"attachment,omitempty"`
	Spacing    string   `json:"spacing,omitempty"`
	Color      []string `json:"color,omitempty"`
}

type LookAlike struct {
	Species      string   `json:"species"`
	Similarities []string `json:"similarities,omitempty"`
	Differences  []string `json:"differences,omitempty"`
	Toxicity     string   `json:"toxicity,omitempty"`
}

type Seasonality struct {
	NaturalFruitingSeasons []string `json:"naturalFruitingSeasons,omitempty"`
	PreferredClimate       []string `json:"preferredClimate,omitempty"`
	Habitat                []string `json:"habitat,omitempty"`
	SymbioticRelationships []string `json:"symbioticRelationships,omitempty"`
}

type MedicinalProperties struct {
	IsMedicinal        bool                `json:"isMedicinal"`
	BioactiveCompounds []BioactiveCompound `json:"bioactiveCompounds,omitempty"`
	TraditionalUses    []string            `json:"traditionalUses,omitempty"`
	ClinicalStudies    []ClinicalStudy     `json:"clinicalStudies,omitempty"`
	ExtractionMethods  []ExtractionMethod  `json:"extractionMethods,omitempty"`
	SafetyProfile      *SafetyProfile      `json:"safetyProfile,omitempty"`
	PreparationForms   []PreparationForm   `json:"preparationForms,omitempty"`
}

type BioactiveCompound struct {
	Name          string   `json:"name"`
	Concentration float64  `json:"concentration,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	Effects       []string `json:"effects,omitempty"`
}

type ClinicalStudy struct {
	Condition       string           `json:"condition"`
	Effectiveness   string           `json:"effectiveness,omitempty"`
	Dosage          *Dosage          `json:"dosage,omitempty"`
	StudyReferences []StudyReference `json:"studyReferences,omitempty"`
}

type Dosage struct {
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
	Frequency string  `json:"frequency"`
}

type StudyReference struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors,omitempty"`
	Journal string   `json:"journal,omitempty"`
	Year    int      `json:"year,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	URL     string   `json:"url,omitempty"`
}

type ExtractionMethod struct {
	Method          string   `json:"method"`
	TargetCompounds []string `json:"targetCompounds,omitempty"`
	Efficiency      float64  `json:"efficiency,omitempty"`
}

type SafetyProfile struct {
	Contraindications []string `json:"contraindications,omitempty"`
	DrugInteractions  []string `json:"drugInteractions,omitempty"`
	SideEffects       []string `json:"sideEffects,omitempty"`
	Toxicity          string   `json:"toxicity,omitempty"`
	Allergenicity     string   `json:"allergenicity,omitempty"`
}

type PreparationForm struct {
	Form         string `json:"form"`
	Instructions string `json:"instructions,omitempty"`
	ShelfLife    string `json:"shelfLife,omitempty"`
}

type CulinaryUses struct {
	FlavorProfile          []string          `json:"flavorProfile,omitempty"`
	Texture                string            `json:"texture,omitempty"`
	CookingMethods         []string          `json:"cookingMethods,omitempty"`
	PairingRecommendations []string          `json:"pairingRecommendations,omitempty"`
	NutritionalValue       *NutritionalValue `json:"nutritionalValue,omitempty"`
	Recipes                []Recipe          `json:"recipes,omitempty"`
}

type NutritionalValue struct {
	Protein       float64    `json:"protein,omitempty"`
	Carbohydrates float64    `json:"carbohydrates,omitempty"`
	Fats          float64    `json:"fats,omitempty"`
	Fiber         float64    `json:"fiber,omitempty"`
	Vitamins      []Nutrient `json:"vitamins,omitempty"`
	Minerals      []Nutrient `json:"minerals,omitempty"`
}

type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	PrepTime     string   `json:"prepTime,omitempty"`
	CookTime     string   `json:"cookTime,omitempty"`
	Servings     int      `json:"servings,omitempty"`
}

type StorageInfo struct {
	Methods []StorageMethod `json:"methods,omitempty"`
}

type StorageMethod struct {
	Method             string `json:"method"`
	Procedure          string `json:"procedure,omitempty"`
	ShelfLife          string `json:"shelfLife,omitempty"`
	EffectOnProperties string `json:"effectOnProperties,omitempty"`
}

type CommercialData struct {
	MarketValue       *MarketValue `json:"marketValue,omitempty"`
	MajorProducers    []string     `json:"majorProducers,omitempty"`
	IndustryStandards []string     `json:"industryStandards,omitempty"`
}

type MarketValue struct {
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Unit     string    `json:"unit"`
	AsOf     time.Time `json:"asOf,omitempty"`
}

type Sustainability struct {
	ConservationStatus  string   `json:"conservationStatus,omitempty"`
	HarvestingPractices []string `json:"harvestingPractices,omitempty"`
	EnvironmentalImpact string   `json:"environmentalImpact,omitempty"`
}

// Media aggregates images, videos, and external resources attached to a
// species document. Image URLs may be object-storage keys managed through
// the media upload endpoint.
type Media struct {
	Images    []MediaImage    `json:"images,omitempty"`
	Videos    []MediaVideo    `json:"videos,omitempty"`
	Resources []MediaResource `json:"resources,omitempty"`
}

type MediaImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Type    string `json:"type,omitempty"`
}

type MediaVideo struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type MediaResource struct {
	Title       string `json:"title"`
	Type        string `json:"type,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}
