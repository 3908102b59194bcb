package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the wellspring ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-green gradient, one color per line
	s1 := termenv.String(" __      __       .__  .__                       .__              ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("/  \\    /  \\ ____ |  | |  |   ____________________|__| ____    ____").Foreground(p.Color("#34d399"))
	s3 := termenv.String("\\   \\/\\/   // __ \\|  | |  |  /  ___/\\____ \\_  __ \\  |/    \\  / ___\\").Foreground(p.Color("#4ade80"))
	s4 := termenv.String(" \\        /\\  ___/|  |_|  |__\\___ \\ |  |_> >  | \\/  |   |  \\/ /_/  >").Foreground(p.Color("#86efac"))
	s5 := termenv.String("  \\__/\\  /  \\___  >____/____/____  >|   __/|__|  |__|___|  /\\___  /").Foreground(p.Color("#a7f3d0"))
	s6 := termenv.String("       \\/       \\/               \\/ |__|                  \\//_____/").Foreground(p.Color("#d1fae5"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
