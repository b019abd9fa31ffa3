package sentiment

// polarityWords scores are roughly aligned with common English polarity
// lexicons; Indonesian entries mirror their closest English counterpart.
var polarityWords = map[string]float64{
	// English, positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "amazing": 0.6, "awesome": 1.0,
	"delicious": 1.0, "tasty": 0.6, "yummy": 0.7, "nice": 0.6, "friendly": 0.4,
	"clean": 0.4, "fresh": 0.3, "love": 0.5, "loved": 0.7, "lovely": 0.5,
	"best": 1.0, "perfect": 1.0, "wonderful": 1.0, "fantastic": 0.4, "recommended": 0.5,
	"recommend": 0.4, "happy": 0.8, "satisfied": 0.5, "comfortable": 0.4, "cozy": 0.5,
	"cheap": 0.4, "affordable": 0.4, "fast": 0.2, "quick": 0.3, "beautiful": 0.85,
	"ok": 0.5, "okay": 0.5, "fine": 0.4, "worth": 0.3, "generous": 0.4, "polite": 0.4,
	"helpful": 0.4, "enjoyed": 0.5, "enjoy": 0.4, "superb": 1.0, "authentic": 0.5,

	// English, negative
	"bad": -0.7, "terrible": -1.0, "awful": -1.0, "horrible": -1.0, "worst": -1.0,
	"poor": -0.4, "dirty": -0.6, "slow": -0.3, "rude": -0.5, "expensive": -0.5,
	"overpriced": -0.5, "cold": -0.6, "bland": -0.5, "disappointing": -0.6,
	"disappointed": -0.75, "stale": -0.5, "salty": -0.3, "greasy": -0.4, "noisy": -0.3,
	"unfriendly": -0.5, "uncomfortable": -0.5, "wrong": -0.5, "sick": -0.7,
	"disgusting": -1.0, "mediocre": -0.4, "hate": -0.8, "late": -0.3,
	"raw": -0.2, "burnt": -0.5, "overcooked": -0.4, "tasteless": -0.6,

	// Indonesian, positive
	"enak": 0.7, "lezat": 0.9, "mantap": 0.8, "mantab": 0.8, "mantul": 0.8,
	"bagus": 0.7, "baik": 0.5, "ramah": 0.6, "bersih": 0.5, "nyaman": 0.6,
	"rekomendasi": 0.5, "rekomen": 0.5, "puas": 0.7, "memuaskan": 0.8, "suka": 0.5,
	"cepat": 0.3, "murah": 0.4, "terbaik": 1.0, "segar": 0.5, "sempurna": 1.0,
	"cocok": 0.4, "oke": 0.5, "keren": 0.6, "istimewa": 0.8, "juara": 0.8,
	"sedap": 0.7, "gurih": 0.5, "empuk": 0.5, "hangat": 0.3, "sopan": 0.4,
	"senang": 0.7, "terjangkau": 0.4, "luas": 0.3, "asri": 0.5,
	"cantik": 0.6, "indah": 0.7, "favorit": 0.6, "top": 0.5, "nikmat": 0.8,

	// Indonesian, negative
	"buruk": -0.7, "jelek": -0.7, "kotor": -0.6, "lambat": -0.4, "lama": -0.3,
	"mahal": -0.4, "hambar": -0.5, "asin": -0.3, "kecewa": -0.7, "mengecewakan": -0.8,
	"parah": -0.7, "basi": -0.9, "dingin": -0.3, "jorok": -0.7, "kasar": -0.5,
	"lelet": -0.5, "zonk": -0.6, "menyesal": -0.7, "payah": -0.6, "amis": -0.6,
	"bau": -0.5, "berisik": -0.3, "pahit": -0.3, "alot": -0.4, "keras": -0.2,
	"sempit": -0.3, "panas": -0.2, "jutek": -0.6, "cuek": -0.4, "lalat": -0.5,
	"kapok": -0.8, "mengecewakannya": -0.8, "gosong": -0.5, "mentah": -0.3,
}

var preIntensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "so": 1.2, "super": 1.4,
	"quite": 1.1, "too": 1.2, "incredibly": 1.5, "absolutely": 1.4, "pretty": 1.1,
	"sangat": 1.3, "amat": 1.3, "paling": 1.5, "terlalu": 1.2, "cukup": 0.9,
	"agak": 0.7, "sedikit": 0.7, "lumayan": 0.8, "slightly": 0.7, "somewhat": 0.8,
}

var postIntensifiers = map[string]float64{
	"banget": 1.3, "bgt": 1.3, "sekali": 1.3, "pol": 1.4, "parah": 1.3,
}

var negators = []string{
	"not", "no", "never", "dont", "don't", "isn't", "wasn't", "aren't", "weren't",
	"didn't", "doesn't", "cannot", "can't", "won't", "nothing", "hardly",
	"tidak", "tak", "bukan", "gak", "ga", "nggak", "enggak", "engga", "ngga",
	"kurang", "belum", "jangan", "tdk", "gk",
}
