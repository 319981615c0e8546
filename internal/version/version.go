// ABOUTME: Version and product identification
// ABOUTME: Shown in the player header and startup logs
package version

const (
	// Version is the release version
	Version = "0.1.0"

	// Product is the display name
	Product = "lofiwave"

	// Manufacturer identifies the publisher
	Manufacturer = "harperreed"
)

// String returns "Product Version"
func String() string {
	return Product + " " + Version
}
