package types

type Platform string

const (
	PlatformIOS              Platform = "ios"
	PlatformIPhoneSimulator  Platform = "iphonesimulator"
	PlatformMacOS            Platform = "macos"
	PlatformMacCatalyst      Platform = "maccatalyst"
	PlatformWatchOS          Platform = "watchos"
	PlatformWatchOSSimulator Platform = "watchossimulator"
	PlatformTvOS             Platform = "tvos"
	PlatformTvOSSimulator    Platform = "tvossimulator"
)

type platformConstants struct {
	sdk         string
	destination string
}

var platformTable = map[Platform]platformConstants{
	PlatformIOS:              {sdk: "iphoneos", destination: "generic/platform=iOS"},
	PlatformIPhoneSimulator:  {sdk: "iphonesimulator", destination: "generic/platform=iOS Simulator"},
	PlatformMacOS:            {sdk: "macosx", destination: "generic/platform=OS X"},
	PlatformMacCatalyst:      {sdk: "macosx", destination: "generic/platform=OS X,variant=Mac Catalyst"},
	PlatformWatchOS:          {sdk: "watchos", destination: "generic/watchOS"},
	PlatformWatchOSSimulator: {sdk: "watchsimulator", destination: "generic/watchOS Simulator"},
	PlatformTvOS:             {sdk: "appletvos", destination: "generic/tvOS"},
	PlatformTvOSSimulator:    {sdk: "appletvsimulator", destination: "generic/tvOS Simulator"},
}

// AllPlatforms returns every supported platform in declaration order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformIOS,
		PlatformIPhoneSimulator,
		PlatformMacOS,
		PlatformMacCatalyst,
		PlatformWatchOS,
		PlatformWatchOSSimulator,
		PlatformTvOS,
		PlatformTvOSSimulator,
	}
}

func (p Platform) Valid() bool {
	_, ok := platformTable[p]
	return ok
}

// SDK is the value passed to `xcodebuild -sdk`.
func (p Platform) SDK() string {
	return platformTable[p].sdk
}

// Destination is the generic build destination descriptor.
func (p Platform) Destination() string {
	return platformTable[p].destination
}

func (p Platform) String() string {
	return string(p)
}
