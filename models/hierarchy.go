package models

// Level označava nivo autoriteta u organizacionoj hijerarhiji.
type Level string

const (
	LevelL  Level = "L"
	LevelL0 Level = "L0"
	LevelL1 Level = "L1"
	LevelL2 Level = "L2"
	LevelL3 Level = "L3"
	LevelL4 Level = "L4"
	LevelT1 Level = "T1"
	LevelT2 Level = "T2"
)

type Designation struct {
	Title string `json:"title" bson:"title"`
	Level Level  `json:"level" bson:"level"`
	Grade string `json:"grade" bson:"grade"`
}

// Designations je statična tabela zvanja iz organizacionog Excel-a.
var Designations = []Designation{
	{Title: "Assistant Vice President", Level: LevelL0, Grade: "C3"},
	{Title: "Deputy General Manager", Level: LevelL, Grade: "D3"},
	{Title: "Assistant General Manager", Level: LevelL, Grade: "D4"},
	{Title: "Manager", Level: LevelL1, Grade: "E2"},
	{Title: "Deputy Manager", Level: LevelL2, Grade: "E3"},
	{Title: "Assistant Manager", Level: LevelL3, Grade: "E4"},
	{Title: "GET", Level: LevelL3, Grade: "E5"},
	{Title: "Senior Executive Engineer", Level: LevelL3, Grade: "F1"},
	{Title: "Senior Executive Engineer (BBS)", Level: LevelL3, Grade: "F1"},
	{Title: "Senior Executive Engineer (Site)", Level: LevelL3, Grade: "F1"},
	{Title: "Executive Engineer (D)", Level: LevelL4, Grade: "F2"},
	{Title: "Junior Executive Engineer (D)", Level: LevelL4, Grade: "F3"},
	{Title: "Junior Executive Engineer Document Controller", Level: LevelL4, Grade: "F3"},
	{Title: "Diploma Trainee Eng (D)", Level: LevelL4, Grade: "G4"},
	{Title: "Junior Executive Engineer (T)", Level: LevelT1, Grade: "F3"},
	{Title: "Senior Draughtsman (T)", Level: LevelT1, Grade: "G1"},
	{Title: "Junior Executive Engineer (TD)", Level: LevelT2, Grade: "F3"},
}

type Group struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
}

// GroupManagement je sentinel grupa: rukovodstvo nije ograničeno na jednu grupu.
const GroupManagement = "MANAGEMENT"

var Groups = []Group{
	{ID: GroupManagement, Label: "Management (L / L0)"},
	{ID: "GROUP-1", Label: "Group 1 — Pune"},
	{ID: "GROUP-2", Label: "Group 2 — Pune"},
	{ID: "GROUP-3", Label: "Group 3 — Pune"},
	{ID: "TASK-FORCE", Label: "BHQ Task Force"},
	{ID: "SITE-HEDRI", Label: "Hedri Site Posting"},
	{ID: "SITE-GHUGUS", Label: "Ghugus Site Posting"},
}

// Veći broj = veći autoritet.
var levelPower = map[Level]int{
	LevelL:  8,
	LevelL0: 7,
	LevelL1: 6,
	LevelL2: 5,
	LevelL3: 4,
	LevelL4: 2,
	LevelT1: 2,
	LevelT2: 1,
}

var levelLabels = map[Level]string{
	LevelL:  "HOD",
	LevelL0: "Advisor",
	LevelL1: "Team Lead",
	LevelL2: "Group Lead",
	LevelL3: "Designer",
	LevelL4: "Drafting",
	LevelT1: "Tekla (Check)",
	LevelT2: "Tekla (Detail)",
}

// DesignationInfo vraća nivo i gradus za zadato zvanje.
func DesignationInfo(title string) (Designation, bool) {
	for _, d := range Designations {
		if d.Title == title {
			return d, true
		}
	}
	return Designation{}, false
}

// LevelPower vraća rang autoriteta; 0 za nepoznat nivo.
func LevelPower(l Level) int {
	return levelPower[l]
}

func LevelLabel(l Level) string {
	if label, ok := levelLabels[l]; ok {
		return label
	}
	return string(l)
}

func ValidGroup(id string) bool {
	for _, g := range Groups {
		if g.ID == id {
			return true
		}
	}
	return false
}
