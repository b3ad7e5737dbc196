package orbits

// Body is a named element set of the static registry.
type Body struct {
	Name        string
	Designation string // minor planet number, empty for planets
	Elements    Elements
}

// Planets are the J2000 mean elements of the major planets, from the JPL
// approximate positions table (1800 AD - 2050 AD), with M0 = L - ϖ and ω = ϖ - Ω.
var Planets = []Body{
	{"Mercury", "", NewElements(0.38709927, 0.20563593, 7.00497902, 48.33076593, 29.12703035, 174.79252722, J2000, 87.969)},
	{"Venus", "", NewElements(0.72333566, 0.00677672, 3.39467605, 76.67984255, 54.92262463, 50.37663232, J2000, 224.701)},
	{"Earth", "", NewElements(1.00000261, 0.01671123, -0.00001531, 0.0, 102.93768193, -2.47311027, J2000, 365.256)},
	{"Mars", "", NewElements(1.52371034, 0.09339410, 1.84969142, 49.55953891, 286.49683150, 19.39019754, J2000, 686.980)},
	{"Jupiter", "", NewElements(5.20288700, 0.04838624, 1.30439695, 100.47390909, 274.25457074, 19.66796068, J2000, 4332.589)},
	{"Saturn", "", NewElements(9.53667594, 0.05386179, 2.48599187, 113.66242448, 338.93645383, 317.35536592, J2000, 10759.22)},
	{"Uranus", "", NewElements(19.18916464, 0.04725744, 0.77263783, 74.01692503, 96.93735127, 142.28382821, J2000, 30685.4)},
	{"Neptune", "", NewElements(30.06992276, 0.00859048, 1.77004347, 131.78422574, 273.18053653, 259.91520804, J2000, 60189.0)},
}

// fallbackEpoch is JD 2460200.5 (2023-09-13).
const fallbackEpoch = 2460200.5

// SmallBodies are approximate elements of well known near Earth asteroids, used
// when no provider data is available.
var SmallBodies = []Body{
	{"Bennu", "101955", NewElements(1.12639, 0.20372, 6.0349, 1.9606, 66.2231, 101.7039, fallbackEpoch, 436.65)},
	{"Apophis", "99942", NewElements(0.92243, 0.19116, 3.3402, 203.9581, 126.6036, 142.9234, fallbackEpoch, 323.60)},
	{"Didymos", "65803", NewElements(1.64264, 0.38392, 3.4140, 72.9870, 319.5840, 124.8870, fallbackEpoch, 769.97)},
	{"Eros", "433", NewElements(1.45804, 0.22283, 10.8280, 304.2900, 178.9300, 310.5500, fallbackEpoch, 643.00)},
	{"Ryugu", "162173", NewElements(1.19102, 0.19103, 5.8667, 251.2900, 211.6100, 21.5400, fallbackEpoch, 474.70)},
}
