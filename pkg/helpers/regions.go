package helpers

// regionLabels maps the romanized region names stored in the quest catalog
// to the Korean labels shown to users. Query filters always use the stored
// romanized form; this mapping is applied to outgoing responses only.
var regionLabels = map[string]string{
	// Cities
	"Jeju":     "제주시",
	"Seogwipo": "서귀포시",

	// Towns (eup/myeon)
	"Aewol":     "애월읍",
	"Andeok":    "안덕면",
	"Daejeong":  "대정읍",
	"Gujwa":     "구좌읍",
	"Hallim":    "한림읍",
	"Hangyeong": "한경면",
	"Jocheon":   "조천읍",
	"Namwon":    "남원읍",
	"Pyoseon":   "표선면",
	"Seongsan":  "성산읍",
	"Udo":       "우도면",

	// Villages (ri)
	"Gimnyeong":  "김녕리",
	"Gwakji":     "곽지리",
	"Hado":       "하도리",
	"Hamdeok":    "함덕리",
	"Hyeopjae":   "협재리",
	"Pyoseon-ri": "표선리",
	"Sehwa":      "세화리",
	"Sinchang":   "신창리",
	"Woljeong":   "월정리",
}

// DisplayRegionName returns the human-facing label for a stored region name.
// Unknown names pass through unchanged so new regions render without a
// redeploy.
func DisplayRegionName(name string) string {
	if label, ok := regionLabels[name]; ok {
		return label
	}
	return name
}
