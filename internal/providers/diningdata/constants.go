package diningdata

import "time"

const (
	providerName       = "diningdata"
	defaultBaseURL     = "https://diningdata.cedarville.edu/api"
	defaultDays        = 5
	defaultHTTPTimeout = 30 * time.Second
	menusPath          = "/menus"
	maxErrorBody       = 512

	headerOrigin  = "https://www.cedarville.edu"
	headerReferer = "https://www.cedarville.edu/offices/the-commons"
)
