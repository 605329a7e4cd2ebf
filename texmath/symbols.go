package texmath

const (
	openBrace  = '\uE002'
	closeBrace = '\uE003'
)

var symbols = map[string]string{
	// lowercase greek
	"alpha":      "α",
	"beta":       "β",
	"gamma":      "γ",
	"delta":      "δ",
	"epsilon":    "ε",
	"varepsilon": "ε",
	"zeta":       "ζ",
	"eta":        "η",
	"theta":      "θ",
	"vartheta":   "ϑ",
	"iota":       "ι",
	"kappa":      "κ",
	"lambda":     "λ",
	"mu":         "μ",
	"nu":         "ν",
	"xi":         "ξ",
	"omicron":    "ο",
	"pi":         "π",
	"varpi":      "ϖ",
	"rho":        "ρ",
	"varrho":     "ϱ",
	"sigma":      "σ",
	"varsigma":   "ς",
	"tau":        "τ",
	"upsilon":    "υ",
	"phi":        "φ",
	"varphi":     "φ",
	"chi":        "χ",
	"psi":        "ψ",
	"omega":      "ω",

	// uppercase greek
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",

	// binary operators
	"cdot":   "·",
	"times":  "×",
	"div":    "÷",
	"pm":     "±",
	"mp":     "∓",
	"ast":    "∗",
	"star":   "⋆",
	"circ":   "∘",
	"bullet": "•",
	"oplus":  "⊕",
	"ominus": "⊖",
	"otimes": "⊗",
	"odot":   "⊙",
	"wedge":  "∧",
	"land":   "∧",
	"vee":    "∨",
	"lor":    "∨",
	"neg":    "¬",
	"lnot":   "¬",

	// relations
	"leq":      "≤",
	"le":       "≤",
	"geq":      "≥",
	"ge":       "≥",
	"neq":      "≠",
	"ne":       "≠",
	"approx":   "≈",
	"sim":      "∼",
	"simeq":    "≃",
	"cong":     "≅",
	"equiv":    "≡",
	"propto":   "∝",
	"ll":       "≪",
	"gg":       "≫",
	"perp":     "⊥",
	"parallel": "∥",
	"mid":      "∣",
	"in":       "∈",
	"notin":    "∉",
	"ni":       "∋",
	"subset":   "⊂",
	"supset":   "⊃",
	"subseteq": "⊆",
	"supseteq": "⊇",

	// sets and logic
	"cup":        "∪",
	"cap":        "∩",
	"setminus":   "∖",
	"emptyset":   "∅",
	"varnothing": "∅",
	"forall":     "∀",
	"exists":     "∃",
	"nexists":    "∄",
	"therefore":  "∴",
	"because":    "∵",
	"top":        "⊤",
	"bot":        "⊥",

	// arrows
	"to":             "→",
	"rightarrow":     "→",
	"leftarrow":      "←",
	"gets":           "←",
	"leftrightarrow": "↔",
	"Rightarrow":     "⇒",
	"Leftarrow":      "⇐",
	"Leftrightarrow": "⇔",
	"implies":        "⇒",
	"impliedby":      "⇐",
	"iff":            "⇔",
	"mapsto":         "↦",
	"uparrow":        "↑",
	"downarrow":      "↓",
	"longrightarrow": "⟶",
	"longleftarrow":  "⟵",
	"Longrightarrow": "⟹",
	"hookrightarrow": "↪",

	// misc
	"infty":    "∞",
	"partial":  "∂",
	"nabla":    "∇",
	"hbar":     "ħ",
	"ell":      "ℓ",
	"aleph":    "ℵ",
	"Re":       "ℜ",
	"Im":       "ℑ",
	"wp":       "℘",
	"angle":    "∠",
	"triangle": "△",
	"degree":   "°",
	"prime":    "′",
	"cdots":    "⋯",
	"ldots":    "…",
	"dots":     "…",
	"vdots":    "⋮",
	"ddots":    "⋱",
	"langle":   "⟨",
	"rangle":   "⟩",
	"lfloor":   "⌊",
	"rfloor":   "⌋",
	"lceil":    "⌈",
	"rceil":    "⌉",
	"vert":     "|",
	"Vert":     "‖",

	// big operators without limits
	"sum":    "∑",
	"prod":   "∏",
	"coprod": "∐",
	"int":    "∫",
	"iint":   "∬",
	"iiint":  "∭",
	"oint":   "∮",
	"bigcup": "⋃",
	"bigcap": "⋂",

	// spacing
	"quad":  "  ",
	"qquad": "    ",

	// function names
	"sin":    "sin",
	"cos":    "cos",
	"tan":    "tan",
	"cot":    "cot",
	"sec":    "sec",
	"csc":    "csc",
	"arcsin": "arcsin",
	"arccos": "arccos",
	"arctan": "arctan",
	"sinh":   "sinh",
	"cosh":   "cosh",
	"tanh":   "tanh",
	"log":    "log",
	"ln":     "ln",
	"lg":     "lg",
	"exp":    "exp",
	"det":    "det",
	"dim":    "dim",
	"ker":    "ker",
	"gcd":    "gcd",
	"deg":    "deg",
	"arg":    "arg",
	"Pr":     "Pr",
	"mod":    "mod",
	"bmod":   "mod",
}

var punctuation = map[byte]string{
	',': " ",
	';': " ",
	':': " ",
	'!': "",
	' ': " ",
	'{': string(openBrace),
	'}': string(closeBrace),
	'|': "‖",
	'%': "%",
	'$': "$",
	'&': "&",
	'#': "#",
	'_': "_",
}

var blackboard = map[string]string{
	"R": "ℝ",
	"N": "ℕ",
	"Z": "ℤ",
	"Q": "ℚ",
	"C": "ℂ",
	"P": "ℙ",
	"H": "ℍ",
}

var accentMarks = map[string]string{
	"hat":            "\u0302",
	"widehat":        "\u0302",
	"bar":            "\u0305",
	"overline":       "\u0305",
	"underline":      "\u0332",
	"vec":            "\u20d7",
	"overrightarrow": "\u20d7",
	"tilde":          "\u0303",
	"widetilde":      "\u0303",
	"dot":            "\u0307",
	"ddot":           "\u0308",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
}

var operatorGlyphs = map[string]string{
	"sum":    "∑",
	"prod":   "∏",
	"coprod": "∐",
	"int":    "∫",
	"iint":   "∬",
	"iiint":  "∭",
	"oint":   "∮",
	"bigcup": "⋃",
	"bigcap": "⋂",
	"lim":    "lim",
	"limsup": "lim sup",
	"liminf": "lim inf",
	"max":    "max",
	"min":    "min",
	"sup":    "sup",
	"inf":    "inf",
}
