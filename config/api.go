package config

import (
	"time"

	"github.com/ncobase/annofetch/paging"
	"github.com/ncobase/annofetch/version"

	"github.com/spf13/viper"
)

// DefaultEndpoint is the Hypothesis search API
const DefaultEndpoint = "https://hypothes.is/api/search"

// API config struct
type API struct {
	Endpoint  string        `json:"endpoint" yaml:"endpoint" validate:"required,http_url"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout" validate:"gte=0s"` // zero waits forever
	UserAgent string        `json:"user_agent" yaml:"user_agent"`
}

func getAPIConfig(v *viper.Viper) *API {
	return &API{
		Endpoint:  getStringOrDefault(v, "api.endpoint", DefaultEndpoint),
		Timeout:   getDurationOrDefault(v, "api.timeout", 0),
		UserAgent: getStringOrDefault(v, "api.user_agent", version.UserAgent()),
	}
}

// Fetch config struct
type Fetch struct {
	Limit        int  `json:"limit" yaml:"limit"` // out of range falls back to the default
	MaxPages     int  `json:"max_pages" yaml:"max_pages" validate:"gte=0"`
	StopOnRepeat bool `json:"stop_on_repeat" yaml:"stop_on_repeat"`
}

func getFetchConfig(v *viper.Viper) *Fetch {
	return &Fetch{
		Limit:        getIntOrDefault(v, "fetch.limit", paging.DefaultLimit),
		MaxPages:     getIntOrDefault(v, "fetch.max_pages", 0),
		StopOnRepeat: getBoolOrDefault(v, "fetch.stop_on_repeat", false),
	}
}
