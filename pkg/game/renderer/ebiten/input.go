package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "crawlview/pkg/engine/input"
)

// keyCodes maps window keys to the input codes used by the key bindings
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "arrow_up",
	ebiten.KeyArrowDown:  "arrow_down",
	ebiten.KeyArrowLeft:  "arrow_left",
	ebiten.KeyArrowRight: "arrow_right",
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyQ:          "q",
	ebiten.KeyE:          "e",
	ebiten.KeyH:          "h",
	ebiten.KeyJ:          "j",
	ebiten.KeyK:          "k",
	ebiten.KeyL:          "l",
	ebiten.KeyF:          "f",
	ebiten.KeyT:          "t",
	ebiten.KeyM:          "m",
	ebiten.KeyP:          "p",
	ebiten.KeyTab:        "tab",
	ebiten.KeyEscape:     "escape",
}

// pollIntents reads the keyboard for this tick. Movement keys repeat while
// held; everything else fires once per press.
func pollIntents(rep *engineinput.Repeater, now time.Time) []engineinput.Intent {
	var intents []engineinput.Intent
	emit := func(code string) {
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
			Device: engineinput.DeviceKeyboard,
			Code:   code,
		}))
		if intent.Action != engineinput.ActionNone {
			intents = append(intents, intent)
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		emit("ctrl_c")
		return intents
	}

	for key, code := range keyCodes {
		action := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{Code: code})).Action
		if action.IsMovement() {
			if rep.Should(code, ebiten.IsKeyPressed(key), now) {
				emit(code)
			}
			continue
		}
		if inpututil.IsKeyJustPressed(key) {
			emit(code)
		}
	}
	return intents
}
