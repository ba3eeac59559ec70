package main

import (
	"fmt"
	"io"

	"yadro.com/comicbot/poster/core"
)

const (
	exitOK = iota
	exitConfig
	exitNetwork
	exitDataShape
	exitPlatform
)

type diagnosis struct {
	message string
	hint    string
	code    int
}

// Network and platform failures share the wording, only the exit code differs.
var diagnoses = map[core.Kind]diagnosis{
	core.KindConfig: {
		message: "⚙️ configuration error",
		hint:    "🔧 set TG_BOT_TOKEN and TG_CHANNEL_ID in the environment or in a .env file",
		code:    exitConfig,
	},
	core.KindNetwork: {
		message: "🚨 network or API error",
		hint:    "🔧 check the internet connection and the bot settings",
		code:    exitNetwork,
	},
	core.KindPlatform: {
		message: "🚨 network or API error",
		hint:    "🔧 check the internet connection and the bot settings",
		code:    exitPlatform,
	},
	core.KindDataShape: {
		message: "🔍 unexpected data",
		hint:    "🔄 run the poster again, the data may have changed",
		code:    exitDataShape,
	},
}

var unknownDiagnosis = diagnosis{
	message: "🚨 unexpected error",
	hint:    "🔄 run the poster again",
	code:    exitConfig,
}

// report prints a diagnostic with a remediation hint and returns the exit code.
func report(out io.Writer, err error) int {
	d, ok := diagnoses[core.Classify(err)]
	if !ok {
		d = unknownDiagnosis
	}
	_, _ = fmt.Fprintf(out, "%s: %v\n%s\n", d.message, err, d.hint)
	return d.code
}
