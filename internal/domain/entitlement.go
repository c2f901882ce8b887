package domain

// DenyReason explains why an entitlement check failed.
type DenyReason string

const (
	DenyQuotaExceeded          DenyReason = "quota_exceeded"
	DenyDocumentTypeForbidden  DenyReason = "document_type_forbidden"
	DenySummaryFormatForbidden DenyReason = "summary_format_forbidden"
	DenyModelForbidden         DenyReason = "model_forbidden"
	DenyPageLimitExceeded      DenyReason = "page_limit_exceeded"
)

// EntitlementRequest carries the parameters of a requested upload that are
// subject to plan limits.
type EntitlementRequest struct {
	DocumentType  DocumentType
	SummaryFormat SummaryFormat
	PageCount     int
	// Model is an explicit override. Empty means "use the plan's model".
	Model string
}

// Decision is the outcome of an entitlement check. When Allowed is true,
// Model and Priority carry the plan's assigned model and processing priority.
type Decision struct {
	Allowed  bool
	Reason   DenyReason
	Model    string
	Priority bool
}

// Allowed builds an allow decision for the given capabilities.
func Allowed(caps PlanCapabilities) Decision {
	return Decision{Allowed: true, Model: caps.Model, Priority: caps.Priority}
}

// Denied builds a deny decision with the given reason.
func Denied(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CheckEntitlement decides whether one upload is permitted under the given
// plan capabilities and current monthly usage. Checks run in a fixed order
// and the first failing check wins, so error messages are deterministic:
// monthly quota, document type, summary format, model override, page limit.
func CheckEntitlement(caps PlanCapabilities, usage *MonthlyUsage, req EntitlementRequest) Decision {
	if usage != nil && usage.PDFCount >= caps.MaxPDFsPerMonth {
		return Denied(DenyQuotaExceeded)
	}
	if !caps.AllowsDocumentType(req.DocumentType) {
		return Denied(DenyDocumentTypeForbidden)
	}
	if !caps.AllowsSummaryFormat(req.SummaryFormat) {
		return Denied(DenySummaryFormatForbidden)
	}
	if !caps.AllowsModel(req.Model) {
		return Denied(DenyModelForbidden)
	}
	if req.PageCount > caps.MaxPagesPerFile {
		return Denied(DenyPageLimitExceeded)
	}
	return Allowed(caps)
}
