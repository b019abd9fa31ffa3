package app

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

var stopWords = func() map[string]struct{} {
	words := []string{
		// English
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by", "can", "did", "do",
		"for", "from", "had", "has", "have", "he", "her", "here", "him", "his", "how", "i",
		"if", "in", "into", "is", "it", "its", "just", "me", "my", "of", "on", "or", "our",
		"she", "so", "than", "that", "the", "their", "them", "then", "there", "these",
		"they", "this", "to", "too", "us", "was", "we", "were", "what", "when", "where",
		"which", "while", "who", "will", "with", "would", "you", "your", "also", "all",
		"am", "very", "really", "more", "some", "any", "about", "out", "up", "again",
		// Indonesian
		"yang", "dan", "di", "ke", "dari", "ini", "itu", "untuk", "dengan", "ada", "juga",
		"saya", "aku", "kami", "kita", "nya", "tapi", "tetapi", "karena", "sudah", "udah",
		"akan", "atau", "pada", "dalam", "bisa", "jadi", "lagi", "saja", "aja", "sih",
		"deh", "kok", "ya", "yg", "dgn", "dg", "utk", "sama", "buat", "kalau", "kalo",
		"masih", "pun", "lah", "kah", "oleh", "para", "se", "per", "mereka", "dia",
		"sangat", "banget", "bgt", "sekali", "cukup", "agak", "hanya", "cuma", "harus",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
