package opening

func mainLine(move, san, explanation string, frequency, successRate float64, alternatives, plans []string) Move {
	return Move{
		Move:         move,
		SAN:          san,
		Explanation:  explanation,
		Frequency:    frequency,
		SuccessRate:  successRate,
		MainLine:     true,
		Alternatives: alternatives,
		Plans:        plans,
	}
}

// DefaultBook is the set of lines a fresh database is seeded with.
func DefaultBook() []Line {
	return []Line{
		{
			Name: "Italian Game",
			ECO:  "C50-C59",
			Moves: []Move{
				mainLine("e2e4", "e4", "Control the center and open lines for pieces", 0.85, 0.52,
					[]string{"d2d4", "g1f3", "c2c4"}, []string{"Quick development", "Central control", "King safety"}),
				mainLine("e7e5", "e5", "Mirror White's central control", 0.45, 0.48,
					[]string{"c7c5", "e7e6", "c7c6"}, []string{"Counter-attack in center", "Piece development"}),
				mainLine("g1f3", "Nf3", "Develop knight and attack the e5 pawn", 0.90, 0.54,
					[]string{"f2f4", "b1c3", "f1c4"}, []string{"Attack e5", "Prepare d3", "Castle kingside"}),
				mainLine("b8c6", "Nc6", "Defend the e5 pawn and develop", 0.80, 0.49,
					[]string{"f7f5", "d7d6", "b8d7"}, []string{"Defend e5", "Prepare ...f5 or ...d6"}),
				mainLine("f1c4", "Bc4", "Develop bishop to active square, eye f7", 0.75, 0.53,
					[]string{"f1b5", "d2d3", "b1c3"}, []string{"Attack f7", "Prepare castling", "Central pressure"}),
				mainLine("f8e7", "Be7", "Solid development, prepare castling", 0.35, 0.47,
					[]string{"f8c5", "f7f5", "g8f6"}, []string{"Castle kingside", "Prepare ...d6", "Solid setup"}),
			},
			Description:    "Classical opening focusing on rapid development and central control",
			PawnStructures: []string{"e4-e5 center", "d3-e4 vs d6-e5"},
			KeyIdeas:       []string{"Rapid development", "Central control", "King safety", "Attack on f7"},
			FamousGames:    []string{"Morphy vs Duke of Brunswick (1858)", "Kasparov vs Topalov (1999)"},
		},
		{
			Name: "Sicilian Defense",
			ECO:  "B20-B99",
			Moves: []Move{
				mainLine("e2e4", "e4", "Control the center and open lines", 0.85, 0.52,
					[]string{"d2d4", "g1f3", "c2c4"}, []string{"Central control", "Quick development"}),
				mainLine("c7c5", "c5", "Counter-attack on the queenside, unbalanced position", 0.25, 0.46,
					[]string{"e7e5", "e7e6", "c7c6"}, []string{"Queenside expansion", "Counter-play", "Unbalanced positions"}),
				mainLine("g1f3", "Nf3", "Develop knight and prepare d4", 0.85, 0.55,
					[]string{"b1c3", "f2f4", "c2c3"}, []string{"Prepare d4", "Control center", "Develop pieces"}),
				mainLine("d7d6", "d6", "Support the c5 pawn and prepare development", 0.40, 0.45,
					[]string{"b8c6", "g7g6", "a7a6"}, []string{"Support c5", "Prepare ...Nf6", "Flexible development"}),
				mainLine("d2d4", "d4", "Open the center and gain space", 0.90, 0.56,
					[]string{"f1b5", "c2c3", "b1c3"}, []string{"Central breakthrough", "Open lines", "Initiative"}),
				mainLine("c5d4", "cxd4", "Recapture and open the c-file", 0.95, 0.44,
					[]string{"g8f6", "b8c6"}, []string{"Open c-file", "Piece activity", "Counter-play"}),
			},
			Description:    "Sharp, unbalanced defense leading to complex middlegames",
			PawnStructures: []string{"Sicilian pawn chains", "Open c-file", "Maroczy bind"},
			KeyIdeas:       []string{"Counter-attack", "Unbalanced positions", "Queenside play", "Sharp tactics"},
			FamousGames:    []string{"Fischer vs Spassky (1972)", "Kasparov vs Karpov (1984)"},
		},
		{
			Name: "Queen's Gambit",
			ECO:  "D06-D69",
			Moves: []Move{
				mainLine("d2d4", "d4", "Control center and open lines for pieces", 0.40, 0.54,
					[]string{"e2e4", "g1f3", "c2c4"}, []string{"Central control", "Queenside development"}),
				mainLine("d7d5", "d5", "Counter White's central control", 0.50, 0.46,
					[]string{"g8f6", "f7f5", "e7e6"}, []string{"Central equality", "Piece development"}),
				mainLine("c2c4", "c4", "Attack the d5 pawn and gain queenside space", 0.80, 0.55,
					[]string{"g1f3", "c1f4", "e2e3"}, []string{"Pressure d5", "Queenside expansion", "Central control"}),
				mainLine("e7e6", "e6", "Support d5 and prepare piece development", 0.45, 0.47,
					[]string{"d5c4", "c7c6", "g8f6"}, []string{"Solid center", "Prepare ...Nf6", "French-like structure"}),
				mainLine("b1c3", "Nc3", "Develop knight and add pressure to d5", 0.85, 0.54,
					[]string{"g1f3", "c4d5", "e2e3"}, []string{"Pressure d5", "Prepare e4", "Piece development"}),
				mainLine("g8f6", "Nf6", "Develop knight and prepare to recapture on d5", 0.70, 0.46,
					[]string{"c7c6", "b8d7", "f8e7"}, []string{"Develop pieces", "Prepare ...c6", "Solid setup"}),
			},
			Description:    "Positional opening focusing on central control and piece development",
			PawnStructures: []string{"Isolated queen's pawn", "Hanging pawns", "Carlsbad structure"},
			KeyIdeas:       []string{"Central control", "Piece development", "Positional pressure", "Endgame advantages"},
			FamousGames:    []string{"Capablanca vs Marshall (1909)", "Botvinnik vs Capablanca (1938)"},
		},
	}
}
