// Package banner renders the CLI start-up banner.
package banner

import "fmt"

const art = `
                 _
 _ __   ___ _ __| |_ __ _  __ _
| '_ \ / _ \ '__| __/ _' |/ _' |
| | | |  __/ |  | || (_| | (_| |
|_| |_|\___|_|   \__\__,_|\__, |
                          |___/
`

// Banner returns the banner with the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  named-entity token tagger %s\n\n", art, version)
}
