package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// FlashKind distinguishes transient success banners from persistent errors.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot banner shown on the next rendered page. Success banners auto-dismiss
// after DismissAfterMs; error banners stay until dismissed (DismissAfterMs == 0).
type Flash struct {
	Kind           FlashKind `json:"kind"`
	Message        string    `json:"message"`
	DismissAfterMs int64     `json:"dismiss_after_ms,omitempty"`
}
