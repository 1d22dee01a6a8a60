package http

// Wire shapes for the JSON endpoints.

type evalBody struct {
	Script string `json:"script"`
}

type queryBody struct {
	Selector string `json:"selector"`
	Mode     string `json:"mode,omitempty"`
	Attr     string `json:"attr,omitempty"`
}

type inspectBody struct {
	Selector string `json:"selector"`
}

type classesBody struct {
	Classes []string `json:"classes"`
}

type screenshotBody struct {
	Path string `json:"path,omitempty"`
}

type statusPayload struct {
	Status      string `json:"status"`
	App         string `json:"app"`
	PID         int    `json:"pid"`
	UptimeSecs  int64  `json:"uptime_secs"`
	UptimeHuman string `json:"uptime_human"`
	APIVersion  string `json:"api_version"`
}

type screenshotPayload struct {
	OK   bool   `json:"ok"`
	Path string `json:"path"`
}
