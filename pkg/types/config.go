package types

import "time"

// HTTPConfig holds the HTTP settings used when calling OpenAlex.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "formula-cooccurrence/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Interval is the minimum gap between consecutive requests. Zero
	// disables pacing.
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// OpenAlexConfig holds settings for the works search client.
type OpenAlexConfig struct {
	// BaseURL is the API root, without the /works suffix.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Mailto is the contact email sent as the mailto parameter for
	// polite pool access. It is not validated locally.
	Mailto string `json:"mailto" yaml:"mailto"`

	// PerPage is the page size requested for each query (max 200).
	PerPage int `json:"per_page" yaml:"per_page"`
}

// ReportConfig holds settings for the output files.
type ReportConfig struct {
	// OutputDir is the directory the two CSV reports are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// CSLPath, when set, receives a CSL-YAML bibliography of the matched works.
	CSLPath string `json:"csl_path,omitempty" yaml:"csl_path,omitempty"`
}

// RunConfig groups everything a single reporter run needs.
type RunConfig struct {
	HTTP     HTTPConfig     `json:"http" yaml:"http"`
	OpenAlex OpenAlexConfig `json:"openalex" yaml:"openalex"`
	Report   ReportConfig   `json:"report" yaml:"report"`
}
