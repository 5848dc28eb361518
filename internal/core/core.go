package core

import "time"

// Project represents a blog project a staff member is preparing.
type Project struct {
	ID         string    `json:"id"`          // Unique identifier for the project
	Name       string    `json:"name"`        // Display name, used as the keyword fallback
	UserID     string    `json:"user_id"`     // Owning user/tenant scope
	Status     string    `json:"status"`      // draft | photos_uploaded | analyzing | generated
	FTPPath    string    `json:"ftp_path"`    // Remote base path, e.g. /www/blog/2026_08_28_<id>
	PhotoCount int       `json:"photo_count"` // Populated on list queries
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Photo represents one uploaded project photo and its published location.
type Photo struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	ProjectName  string    `json:"project_name,omitempty"` // Populated on search queries
	Filename     string    `json:"filename"`
	FTPURL       string    `json:"ftp_url"`       // Public URL on the static host
	Caption      string    `json:"caption"`
	Category     string    `json:"category"`      // 전시부스 | 인테리어 | 사인물 | 기타
	DisplayOrder int       `json:"display_order"` // 1-based ordering within the project
	CreatedAt    time.Time `json:"created_at"`
}

// PhotoUpdate is a partial photo edit; nil fields keep their stored value.
type PhotoUpdate struct {
	Caption      *string
	Category     *string
	DisplayOrder *int
}

// PhotoFilter narrows a photo search. Dates are YYYY-MM-DD and inclusive.
type PhotoFilter struct {
	Category string
	Keyword  string // matched against caption and filename
	DateFrom string
	DateTo   string
	Page     int
	PageSize int
}

// ReferenceSource is a user-curated URL whose fetched text seeds the writing style.
type ReferenceSource struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReferenceUpdate is a partial reference edit; nil fields keep their stored value.
type ReferenceUpdate struct {
	Title       *string
	Description *string
	Active      *bool
}

// ImageDescription is the analyzer's verdict on a single image.
type ImageDescription struct {
	Description string `json:"description"`
	Category    string `json:"category"` // 전시부스 | 인테리어 | 사인물 | 기타
	Caption     string `json:"caption"`
}

// AnalysisResult is the output of the image-analysis step. It lives only for the
// duration of one generation call; only the derived content is persisted.
type AnalysisResult struct {
	SuggestedTitle string             `json:"suggested_title"`
	OverallTheme   string             `json:"overall_theme"`
	MainKeywords   []string           `json:"main_keywords"`
	Images         []ImageDescription `json:"images"`
	Diagnostics    AnalysisDiag       `json:"debug"`
}

// AnalysisDiag records how the analysis call actually ran.
type AnalysisDiag struct {
	ImagesProcessed int    `json:"images_processed"`
	Model           string `json:"model"`
}

// PersonaDebug reports the outcome of a persona lookup.
type PersonaDebug struct {
	HasPersona bool   `json:"has_persona"`
	Text       string `json:"persona_text"`
	Length     int    `json:"persona_length"`
}

// ReferenceDetail records the fetch outcome for one reference source,
// success or not.
type ReferenceDetail struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Success       bool   `json:"success"`
	ContentLength int    `json:"content_length"`
	Error         string `json:"error"`
	Preview       string `json:"preview"`
}

// ReferenceDebug is the aggregator's result: per-source diagnostics plus the
// combined excerpt that feeds the prompt.
type ReferenceDebug struct {
	URLsFound   int               `json:"urls_found"`
	URLsFetched int               `json:"urls_fetched"`
	Details     []ReferenceDetail `json:"url_details"`
	Combined    string            `json:"combined_content"`
}

// PromptSections records which optional sections made it into the prompt.
type PromptSections struct {
	HasPersona       bool   `json:"has_persona"`
	HasReference     bool   `json:"has_reference"`
	PersonaPreview   string `json:"persona_preview"`
	ReferencePreview string `json:"reference_preview"`
}

// DebugTrace is the structured record of every decision taken during one
// generation run. It is returned alongside both success and failure results.
type DebugTrace struct {
	Timestamp        time.Time      `json:"timestamp"`
	UserID           string         `json:"user_id"`
	Persona          PersonaDebug   `json:"persona"`
	ReferenceURLs    ReferenceDebug `json:"reference_urls"`
	PromptSections   PromptSections `json:"prompt_sections"`
	FullPromptLength int            `json:"full_prompt_length"`
	Model            string         `json:"model"`
}

// GeneratedContent is the pipeline's terminal artifact. Ownership passes to the
// caller, which persists and publishes it.
type GeneratedContent struct {
	Title       string      `json:"title"`
	ContentHTML string      `json:"content_html"`
	Tags        []string    `json:"tags"`
	DebugTrace  *DebugTrace `json:"debug,omitempty"`
}

// Content is a persisted generation result for a project.
type Content struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	ContentHTML string    `json:"content_html"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PhotoPage is one page of a photo search.
type PhotoPage struct {
	Photos     []Photo `json:"photos"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}

// Project status values.
const (
	StatusDraft          = "draft"
	StatusPhotosUploaded = "photos_uploaded"
	StatusAnalyzing      = "analyzing"
	StatusGenerated      = "generated"
)

// SettingBlogPersona is the settings key holding a user's writing persona.
const SettingBlogPersona = "blog_persona"
