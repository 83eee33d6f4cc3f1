// Package fsd
package fsd

type RatingModel struct {
	Id        int    `json:"id"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

// AtcRating 管制员等级, 登录 #AA 与观察者 % 报文使用
type AtcRating int

const (
	AtcObserver AtcRating = iota + 1
	AtcStudent
	AtcStudent2
	AtcStudent3
	AtcController1
	AtcController2
	AtcController3
	AtcInstructor1
	AtcInstructor2
	AtcInstructor3
	AtcSupervisor
	AtcAdministrator
)

var AtcRatings = []RatingModel{
	{1, "OBS", "Observer"},
	{2, "S1", "Tower Trainee"},
	{3, "S2", "Tower Controller"},
	{4, "S3", "Senior Student"},
	{5, "C1", "Enroute Controller"},
	{6, "C2", "Controller 2 (not in use)"},
	{7, "C3", "Senior Controller"},
	{8, "I1", "Instructor"},
	{9, "I2", "Instructor 2 (not in use)"},
	{10, "I3", "Senior Instructor"},
	{11, "SUP", "Supervisor"},
	{12, "ADM", "Administrator"},
}

func (r AtcRating) String() string {
	if r < AtcObserver || r > AtcAdministrator {
		return "Unknown"
	}
	return AtcRatings[r-1].ShortName
}

func (r AtcRating) Index() int {
	return int(r)
}

// PilotRating 飞行员等级, 登录 #AP 报文使用
type PilotRating int

const (
	PilotUnknown PilotRating = iota
	PilotPPL
	PilotInstrument
	PilotCPL
	PilotATP
	PilotFlightInstructor
)

var PilotRatings = []RatingModel{
	{0, "UNK", "Unknown"},
	{1, "PPL", "Private Pilot License"},
	{2, "IR", "Instrument Rating"},
	{3, "CPL", "Commercial Pilot License"},
	{4, "ATP", "Airline Transport Pilot"},
	{5, "FI", "Flight Instructor"},
}

func (r PilotRating) String() string {
	if r < PilotUnknown || r > PilotFlightInstructor {
		return "Unknown"
	}
	return PilotRatings[r].ShortName
}

func (r PilotRating) Index() int {
	return int(r)
}
