package constants

// Static route constants
const (
	PublicRoute = "/"
	APIRoute    = "/api"
	// Local prefix served by the image proxy
	ImageProxyRoute = APIRoute + "/img"
	// Asset directory relative to the project root
	AssetsPath = "public/assets"
)
