package ui

import (
	"fmt"

	cfg "github.com/automoto/partyroom/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

type CoinFlipUI struct {
	UI *ebitenui.UI

	stateLabel   *widget.Label
	playersLabel *widget.Label
	flipBtn      *widget.Button

	faces faces
}

func NewCoinFlipUI(onFlip, onLeave func()) *CoinFlipUI {
	ui := &CoinFlipUI{faces: loadFaces()}

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.BlackOverlay)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.RowLayoutOpts.Spacing(12),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)

	ui.stateLabel = widget.NewLabel(
		widget.LabelOpts.Text("Head", &ui.faces.normal, &widget.LabelColor{Idle: cfg.Coin.HeadColor}),
	)
	ui.playersLabel = widget.NewLabel(
		widget.LabelOpts.Text("Players: 0", &ui.faces.normal, &widget.LabelColor{Idle: cfg.White}),
	)
	ui.flipBtn = newButton("Flip (F)", &ui.faces.normal, 90, onFlip)

	bar.AddChild(ui.stateLabel)
	bar.AddChild(ui.playersLabel)
	bar.AddChild(ui.flipBtn)
	bar.AddChild(newButton("Leave (L)", &ui.faces.normal, 90, onLeave))

	rootContainer.AddChild(bar)
	ui.UI = &ebitenui.UI{Container: rootContainer}
	return ui
}

// SetState shows the coin's current face, or "Flipping..." mid-animation.
func (ui *CoinFlipUI) SetState(label string) {
	ui.stateLabel.Label = label
}

func (ui *CoinFlipUI) SetPlayers(n int) {
	ui.playersLabel.Label = fmt.Sprintf("Players: %d", n)
}

func (ui *CoinFlipUI) SetFlipping(flipping bool) {
	ui.flipBtn.GetWidget().Disabled = flipping
}

func (ui *CoinFlipUI) Update() {
	ui.UI.Update()
}
