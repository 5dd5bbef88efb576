package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

const bannerText = `
     ██╗ ██████╗ ██████╗ ███████╗███████╗ █████╗ ██████╗  ██████╗██╗  ██╗
     ██║██╔═══██╗██╔══██╗██╔════╝██╔════╝██╔══██╗██╔══██╗██╔════╝██║  ██║
     ██║██║   ██║██████╔╝███████╗█████╗  ███████║██████╔╝██║     ███████║
██   ██║██║   ██║██╔══██╗╚════██║██╔══╝  ██╔══██║██╔══██╗██║     ██╔══██║
╚█████╔╝╚██████╔╝██████╔╝███████║███████╗██║  ██║██║  ██║╚██████╗██║  ██║
 ╚════╝  ╚═════╝ ╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝
`

// ColorizeText applies random colors to the input text
func ColorizeText(text string) string {
	source := rand.NewSource(time.Now().UnixNano())
	random := rand.New(source)

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	firstPoint := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	strs := strings.Split(text, "")

	var coloredText string
	for i := 0; i < len(text); i++ {
		if i < len(strs) {
			coloredText += startColor.Fade(0, float32(len(text)), float32(i%(len(text)/2)), firstPoint).Sprint(strs[i])
		}
	}

	return coloredText
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		coloredBanner := ColorizeText(bannerText)
		fmt.Println(coloredBanner)
	}
}

// ColorizeSalary formats an annualized salary with a color keyed to its size
func ColorizeSalary(annualized *float64) string {
	if annualized == nil {
		return pterm.Red("Not Available")
	}

	formatted := "$" + humanize.CommafWithDigits(*annualized, 0)

	switch {
	case *annualized >= 400000:
		return pterm.Green(formatted)
	case *annualized >= 300000:
		return pterm.LightGreen(formatted)
	case *annualized >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
