package ui

import (
	"image/color"
	"strings"

	cfg "github.com/automoto/partyroom/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// maxLogLines keeps the launcher log inside the window.
const maxLogLines = 8

type LauncherUI struct {
	UI *ebitenui.UI

	OnNameChanged func(name string)
	OnConnect     func(mode int)

	nameInput    *widget.TextInput
	addressInput *widget.TextInput
	modeButtons  []*widget.Button
	connectBtn   *widget.Button
	logText      *widget.Text

	mode  int
	lines []string
	faces faces
}

func NewLauncherUI(name, address string, onNameChanged func(string), onConnect func(int)) *LauncherUI {
	ui := &LauncherUI{
		OnNameChanged: onNameChanged,
		OnConnect:     onConnect,
		faces:         loadFaces(),
	}
	ui.buildUI()
	ui.nameInput.SetText(name)
	ui.addressInput.SetText(address)
	return ui
}

func (ui *LauncherUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.Launcher.BackgroundColor)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	content := newColumn(12, 8)

	content.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(cfg.Launcher.Title, &ui.faces.title, &widget.LabelColor{
			Idle: cfg.Launcher.TitleColor,
		}),
	))

	ui.nameInput = ui.addField(content, "Name:   ", cfg.Network.DefaultName, func(text string) {
		if ui.OnNameChanged != nil {
			ui.OnNameChanged(text)
		}
	})
	ui.addressInput = ui.addField(content, "Server: ", cfg.Network.DefaultAddress, nil)

	content.AddChild(ui.buildModeRow())

	ui.connectBtn = newButton("Connect", &ui.faces.normal, 140, func() {
		if ui.OnConnect != nil {
			ui.OnConnect(ui.mode)
		}
	})
	content.AddChild(ui.connectBtn)

	ui.logText = widget.NewText(
		widget.TextOpts.Text("", &ui.faces.small, color.RGBA{255, 200, 100, 255}),
	)
	content.AddChild(ui.logText)

	rootContainer.AddChild(content)
	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *LauncherUI) addField(parent *widget.Container, label, placeholder string, onChange func(string)) *widget.TextInput {
	row := newRow(6)
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(label, &ui.faces.normal, &widget.LabelColor{
			Idle: cfg.Launcher.TextColor,
		}),
	))

	opts := []widget.TextInputOpt{
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(180, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(cfg.Launcher.InputBackground),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&ui.faces.normal),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          cfg.Launcher.TextColor,
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         cfg.Launcher.TextColor,
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	}
	if onChange != nil {
		opts = append(opts, widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			onChange(args.InputText)
		}))
	}

	input := widget.NewTextInput(opts...)
	row.AddChild(input)
	parent.AddChild(row)
	return input
}

func (ui *LauncherUI) buildModeRow() *widget.Container {
	row := newRow(6)

	for i, label := range cfg.Launcher.Modes {
		mode := i
		btn := widget.NewButton(
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(110, 24)),
			widget.ButtonOpts.Image(&widget.ButtonImage{
				Idle:    image.NewNineSliceColor(cfg.Launcher.ButtonIdle),
				Hover:   image.NewNineSliceColor(cfg.Launcher.ButtonHover),
				Pressed: image.NewNineSliceColor(cfg.Launcher.ButtonPressed),
			}),
			widget.ButtonOpts.Text(label, &ui.faces.normal, &widget.ButtonTextColor{
				Idle: cfg.Launcher.TextColor,
			}),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				ui.mode = mode
			}),
		)
		ui.modeButtons = append(ui.modeButtons, btn)
		row.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(ui.modeButtons))
	for _, b := range ui.modeButtons {
		elements = append(elements, b)
	}
	widget.NewRadioGroup(widget.RadioGroupOpts.Elements(elements...))

	return row
}

// Name returns the text in the name field.
func (ui *LauncherUI) Name() string {
	return ui.nameInput.GetText()
}

// Mode returns the index of the selected mode button.
func (ui *LauncherUI) Mode() int {
	return ui.mode
}

// Address returns the server field, or "" when left empty.
func (ui *LauncherUI) Address() string {
	return strings.TrimSpace(ui.addressInput.GetText())
}

// AppendLog adds text to the log label. Lines end with "\n".
func (ui *LauncherUI) AppendLog(s string) {
	ui.lines = append(ui.lines, strings.Split(strings.TrimRight(s, "\n"), "\n")...)
	if len(ui.lines) > maxLogLines {
		ui.lines = ui.lines[len(ui.lines)-maxLogLines:]
	}
	ui.logText.Label = strings.Join(ui.lines, "\n")
}

func (ui *LauncherUI) SetConnecting(connecting bool) {
	ui.connectBtn.GetWidget().Disabled = connecting
	ui.nameInput.GetWidget().Disabled = connecting
	ui.addressInput.GetWidget().Disabled = connecting
}

func (ui *LauncherUI) Update() {
	ui.UI.Update()
}
