package testdata

import (
	"encoding/json"

	"git.lost.host/meutraa/tapbeat/internal/game"
)

// Example is the smallest chart with a multi note group
const Example = "120\n\n1\n2(0,5)\n1"

// Stage is a short silent chart with comments, weights and both edges of
// the horizontal range.
const Stage = `150

1 intro
2(0)
2(-15,15)
4(3) fast
4(-3)
4(6)
4(-6)

1(0,10,-10)
3
3(7)
3(-7)
`

// Long has a long note group, which is parsed but not playable
const Long = "100\nsong.ogg\n1(2)\n2(1)[4,5]\n"

// stageJSON is Stage as parsed
const stageJSON = `{
	"Name": "stage",
	"Tempo": 150,
	"Audio": "",
	"Groups": [
		{"Line": 2, "Weight": 1},
		{"Line": 3, "Weight": 2, "Short": [0]},
		{"Line": 4, "Weight": 2, "Short": [-15, 15]},
		{"Line": 5, "Weight": 4, "Short": [3]},
		{"Line": 6, "Weight": 4, "Short": [-3]},
		{"Line": 7, "Weight": 4, "Short": [6]},
		{"Line": 8, "Weight": 4, "Short": [-6]},
		{"Line": 10, "Weight": 1, "Short": [0, 10, -10]},
		{"Line": 11, "Weight": 3},
		{"Line": 12, "Weight": 3, "Short": [7]},
		{"Line": 13, "Weight": 3, "Short": [-7]}
	]
}`

func GetChart() (*game.Chart, error) {
	var chart game.Chart
	if err := json.Unmarshal([]byte(stageJSON), &chart); nil != err {
		return nil, err
	}
	chart.Text = Stage
	return &chart, nil
}
