package domain

// PlanTier identifies a subscription plan.
type PlanTier string

const (
	PlanFree    PlanTier = "free"
	PlanStarter PlanTier = "starter"
	PlanPro     PlanTier = "pro"
)

// DocumentType tags what kind of document is being summarized.
type DocumentType string

const (
	DocTypeAcademic   DocumentType = "academic"
	DocTypeBusiness   DocumentType = "business"
	DocTypeLegal      DocumentType = "legal"
	DocTypeHealthcare DocumentType = "healthcare"
	DocTypeFinance    DocumentType = "finance"
	DocTypeTech       DocumentType = "tech"
)

// SummaryFormat selects the shape of the generated summary.
type SummaryFormat string

const (
	FormatPlainText   SummaryFormat = "plain_text"
	FormatInteractive SummaryFormat = "interactive"
	FormatTodoList    SummaryFormat = "todo_list"
	FormatVisual      SummaryFormat = "visual"
	FormatFlowchart   SummaryFormat = "flowchart"
)

// AI models assigned per plan.
const (
	ModelGPT35Turbo = "gpt-3.5-turbo"
	ModelGPT4       = "gpt-4"
)

// Non-document feature flags.
const (
	FeaturePrioritySupport = "priority_support"
	FeatureCommunityAccess = "community_access"
)

// PlanCapabilities is everything a plan entitles a user to.
type PlanCapabilities struct {
	Tier            PlanTier        `json:"tier"`
	MaxPagesPerFile int             `json:"max_pages_per_file"`
	MaxPDFsPerMonth int             `json:"max_pdfs_per_month"`
	DocumentTypes   []DocumentType  `json:"document_types"`
	SummaryFormats  []SummaryFormat `json:"summary_formats"`
	Model           string          `json:"model"`
	Priority        bool            `json:"priority"`
	Features        []string        `json:"features"`
}

// CapabilitiesFor returns the capability set for a plan tier.
// Unknown tiers fall back to the free plan's limits.
func CapabilitiesFor(tier PlanTier) PlanCapabilities {
	switch tier {
	case PlanStarter:
		return PlanCapabilities{
			Tier:            PlanStarter,
			MaxPagesPerFile: 20,
			MaxPDFsPerMonth: 50,
			DocumentTypes:   []DocumentType{DocTypeAcademic, DocTypeBusiness, DocTypeLegal},
			SummaryFormats:  []SummaryFormat{FormatPlainText, FormatInteractive, FormatTodoList},
			Model:           ModelGPT4,
			Priority:        false,
			Features:        []string{FeaturePrioritySupport},
		}
	case PlanPro:
		return PlanCapabilities{
			Tier:            PlanPro,
			MaxPagesPerFile: 30,
			MaxPDFsPerMonth: 100,
			DocumentTypes: []DocumentType{
				DocTypeAcademic, DocTypeBusiness, DocTypeLegal,
				DocTypeHealthcare, DocTypeFinance, DocTypeTech,
			},
			SummaryFormats: []SummaryFormat{
				FormatPlainText, FormatInteractive, FormatTodoList,
				FormatVisual, FormatFlowchart,
			},
			Model:    ModelGPT4,
			Priority: true,
			Features: []string{FeaturePrioritySupport, FeatureCommunityAccess},
		}
	default:
		return PlanCapabilities{
			Tier:            PlanFree,
			MaxPagesPerFile: 20,
			MaxPDFsPerMonth: 5,
			DocumentTypes:   []DocumentType{DocTypeAcademic, DocTypeBusiness},
			SummaryFormats:  []SummaryFormat{FormatPlainText},
			Model:           ModelGPT35Turbo,
			Priority:        false,
			Features:        []string{},
		}
	}
}

// AllowsDocumentType reports whether the plan may summarize the given document type.
func (c PlanCapabilities) AllowsDocumentType(dt DocumentType) bool {
	for _, allowed := range c.DocumentTypes {
		if allowed == dt {
			return true
		}
	}
	return false
}

// AllowsSummaryFormat reports whether the plan may produce the given summary format.
func (c PlanCapabilities) AllowsSummaryFormat(sf SummaryFormat) bool {
	for _, allowed := range c.SummaryFormats {
		if allowed == sf {
			return true
		}
	}
	return false
}

// AllowsModel reports whether an explicitly requested model is within the
// plan's entitlement. An empty request means "use the plan model" and is
// always allowed; an unknown model name is never allowed.
func (c PlanCapabilities) AllowsModel(requested string) bool {
	if requested == "" {
		return true
	}
	rank, ok := modelRank[requested]
	if !ok {
		return false
	}
	return rank <= modelRank[c.Model]
}

// HasFeature reports whether a non-document feature flag is enabled for the plan.
func (c PlanCapabilities) HasFeature(feature string) bool {
	for _, f := range c.Features {
		if f == feature {
			return true
		}
	}
	return false
}

var modelRank = map[string]int{
	ModelGPT35Turbo: 0,
	ModelGPT4:       1,
}

var planLevels = map[PlanTier]int{
	PlanFree:    0,
	PlanStarter: 1,
	PlanPro:     2,
}

// PlanLevel returns the ordinal level of a tier (free=0, starter=1, pro=2).
// Unknown tiers are treated as free.
func PlanLevel(tier PlanTier) int {
	return planLevels[tier]
}

// MeetsMinimum reports whether a tier is at or above a required minimum tier.
func MeetsMinimum(tier, minimum PlanTier) bool {
	return PlanLevel(tier) >= PlanLevel(minimum)
}

// ValidPlanTier reports whether the string names one of the selectable plans.
func ValidPlanTier(s string) bool {
	_, ok := planLevels[PlanTier(s)]
	return ok
}
