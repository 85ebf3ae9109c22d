package field

// Device class thresholds
const (
	compactWidth = 768.0 // surfaces narrower than this are compact

	compactCap     = 60
	compactDivisor = 15000.0
	wideCap        = 150
	wideDivisor    = 8000.0

	compactConnectionDist = 80.0
	wideConnectionDist    = 120.0
)

// Motion constants, all per frame in CSS pixels
const (
	interactionRadius = 150.0 // pointer repulsion radius
	repulsionStrength = 0.3
	damping           = 0.985
	fadeStep          = 0.002
	edgeBand          = 10.0 // particles wrap once they leave the surface by this much

	initialSpeed     = 0.4 // velocity components are (rand-0.5)*initialSpeed
	radiusMin        = 0.5
	radiusSpan       = 2.0
	baseOpacityMin   = 0.1
	baseOpacitySpan  = 0.4
	connectionWidth  = 0.5
	connectionAlpha  = 0.12
	opacityReference = 0.4 // connection alpha is normalised against this opacity
	glowThreshold    = 1.5
	glowScale        = 3.0
	glowAlpha        = 0.1

	maxDevicePixelRatio = 2.0
)

// farAway is the pointer sentinel used while no pointer is present
const farAway = -9999.0

// DefaultAccent is the accent hue, rgb(255, 77, 0)
const DefaultAccent = "#ff4d00"
