package anki

import (
	_ "embed"
	"encoding/json"
	"strconv"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// schemaStatements splits schema.sql into single statements for db.Exec
func schemaStatements() []string {
	var statements []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "--") {
				lines = append(lines, line)
			}
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

const (
	defaultDeckID   = 1
	defaultConfID   = 1
	deckDescription = "Japanese vocabulary extracted from subtitles by srt2anki"

	noteTypeCSS = `.card {
  font-family: arial;
  font-size: 20px;
  text-align: center;
  color: black;
  background-color: white;
}`
	latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`
	latexPost = `\end{document}`
)

// deck is an entry of the col.decks JSON object
type deck struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Mod              int64  `json:"mod"`
	Desc             string `json:"desc"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	Dyn              int    `json:"dyn"`
	Conf             int    `json:"conf"`
	USN              int    `json:"usn"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
}

func newDeck(id int64, name, desc string, mod int64) deck {
	return deck{
		ID:        id,
		Name:      name,
		Mod:       mod,
		Desc:      desc,
		Conf:      defaultConfID,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}

type noteField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type cardTemplate struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Did   *int64 `json:"did"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
}

// noteType is an entry of the col.models JSON object
type noteType struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      int            `json:"type"`
	Mod       int64          `json:"mod"`
	USN       int            `json:"usn"`
	SortField int            `json:"sortf"`
	Did       int64          `json:"did"`
	Req       [][]any        `json:"req"`
	Vers      []int          `json:"vers"`
	Tags      []string       `json:"tags"`
	LatexPre  string         `json:"latexPre"`
	LatexPost string         `json:"latexPost"`
	Fields    []noteField    `json:"flds"`
	Templates []cardTemplate `json:"tmpls"`
	CSS       string         `json:"css"`
}

// newNoteType returns the Question/Answer note type with a single
// "Card 1" template that every deck uses
func newNoteType(id, deckID, mod int64) noteType {
	fields := make([]noteField, 0, 2)
	for ord, name := range []string{"Question", "Answer"} {
		fields = append(fields, noteField{Name: name, Ord: ord, Font: "Arial", Size: 20, Media: []string{}})
	}

	return noteType{
		ID:        id,
		Name:      ModelName,
		Mod:       mod,
		USN:       -1,
		Did:       deckID,
		Req:       [][]any{{0, "all", []int{0}}},
		Vers:      []int{},
		Tags:      []string{},
		LatexPre:  latexPre,
		LatexPost: latexPost,
		Fields:    fields,
		Templates: []cardTemplate{{Name: "Card 1", Qfmt: "{{Question}}", Afmt: "{{Answer}}"}},
		CSS:       noteTypeCSS,
	}
}

type newCardConf struct {
	Delays        []int `json:"delays"`
	Ints          []int `json:"ints"`
	InitialFactor int   `json:"initialFactor"`
	PerDay        int   `json:"perDay"`
	Order         int   `json:"order"`
	Bury          bool  `json:"bury"`
	Separate      bool  `json:"separate"`
}

type lapseConf struct {
	Delays      []int `json:"delays"`
	Mult        int   `json:"mult"`
	MinInt      int   `json:"minInt"`
	LeechFails  int   `json:"leechFails"`
	LeechAction int   `json:"leechAction"`
}

type revConf struct {
	PerDay   int     `json:"perDay"`
	Ease4    float64 `json:"ease4"`
	Fuzz     float64 `json:"fuzz"`
	MaxIvl   int     `json:"maxIvl"`
	IvlFct   int     `json:"ivlFct"`
	Bury     bool    `json:"bury"`
	MinSpace int     `json:"minSpace"`
}

// deckConf is an entry of the col.dconf JSON object
type deckConf struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Dyn      int         `json:"dyn"`
	New      newCardConf `json:"new"`
	Lapse    lapseConf   `json:"lapse"`
	Rev      revConf     `json:"rev"`
	Timer    int         `json:"timer"`
	MaxTaken int         `json:"maxTaken"`
	USN      int         `json:"usn"`
	Mod      int64       `json:"mod"`
	Autoplay bool        `json:"autoplay"`
	Replayq  bool        `json:"replayq"`
}

func defaultDeckConf(mod int64) deckConf {
	return deckConf{
		ID:   defaultConfID,
		Name: "Default",
		New: newCardConf{
			Delays:        []int{1, 10},
			Ints:          []int{1, 4, 7},
			InitialFactor: 2500,
			PerDay:        20,
			Order:         1,
			Bury:          true,
			Separate:      true,
		},
		Lapse:    lapseConf{Delays: []int{10}, MinInt: 1, LeechFails: 8},
		Rev:      revConf{PerDay: 100, Ease4: 1.3, Fuzz: 0.05, MaxIvl: 36500, IvlFct: 1, Bury: true, MinSpace: 1},
		MaxTaken: 60,
		Mod:      mod,
		Autoplay: true,
		Replayq:  true,
	}
}

// collectionConf is the col.conf JSON object
type collectionConf struct {
	NextPos       int     `json:"nextPos"`
	EstTimes      bool    `json:"estTimes"`
	ActiveDecks   []int64 `json:"activeDecks"`
	SortType      string  `json:"sortType"`
	SortBackwards bool    `json:"sortBackwards"`
	AddToCur      bool    `json:"addToCur"`
	CurDeck       int64   `json:"curDeck"`
	NewSpread     int     `json:"newSpread"`
	DueCounts     bool    `json:"dueCounts"`
	CollapseTime  int     `json:"collapseTime"`
	TimeLim       int     `json:"timeLim"`
	SchedVer      int     `json:"schedVer"`
	CurModel      string  `json:"curModel"`
	DayLearnFirst bool    `json:"dayLearnFirst"`
}

// collectionJSON holds the JSON columns of the single col row
type collectionJSON struct {
	conf, models, decks, dconf string
}

// collectionColumns renders the col row JSON for one deck and one note type
func (g *APKGGenerator) collectionColumns(now int64) (collectionJSON, error) {
	var cols collectionJSON

	values := []struct {
		dst *string
		v   any
	}{
		{&cols.conf, collectionConf{
			NextPos:      1,
			EstTimes:     true,
			ActiveDecks:  []int64{defaultDeckID},
			SortType:     "noteFld",
			AddToCur:     true,
			CurDeck:      defaultDeckID,
			DueCounts:    true,
			CollapseTime: 1200,
			SchedVer:     1,
			CurModel:     strconv.FormatInt(g.modelID, 10),
		}},
		{&cols.models, map[string]noteType{
			strconv.FormatInt(g.modelID, 10): newNoteType(g.modelID, g.deckID, now),
		}},
		{&cols.decks, map[string]deck{
			strconv.Itoa(defaultDeckID):     newDeck(defaultDeckID, "Default", "", now),
			strconv.FormatInt(g.deckID, 10): newDeck(g.deckID, g.deckName, deckDescription, now),
		}},
		{&cols.dconf, map[string]deckConf{
			strconv.Itoa(defaultConfID): defaultDeckConf(now),
		}},
	}

	for _, value := range values {
		data, err := json.Marshal(value.v)
		if err != nil {
			return cols, err
		}
		*value.dst = string(data)
	}
	return cols, nil
}
