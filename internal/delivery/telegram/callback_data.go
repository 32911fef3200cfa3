package telegram

import (
	"strings"
)

// Callback action constants.
const (
	actionLog    = "log"
	actionQuests = "quests"
	actionReset  = "reset"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// maxCallbackDataLen is the Bot API limit for callback_data.
const maxCallbackDataLen = 64

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	action, rest, found := strings.Cut(data, ":")
	cd := callbackData{Action: action, Raw: data}
	if found {
		cd.Params = strings.Split(rest, ":")
	}
	return cd
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < len(cd.Params) {
		return cd.Params[i]
	}
	return ""
}

// buildLogCallback builds callback data that logs the quest with the given label.
// The label is the quest identity, so a button from a previous day no longer matches.
func buildLogCallback(task string) (string, bool) {
	data := callbackData{Action: actionLog, Params: []string{task}}.encode()
	return data, len(data) <= maxCallbackDataLen
}

func buildQuestsCallback() string {
	return actionQuests
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
