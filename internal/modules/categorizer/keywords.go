package categorizer

import "github.com/finobai/finobai/internal/domain"

// categoryKeywords maps each category to its match list. Order matters:
// ties between equal scores resolve to the earlier entry, so the slice is
// the contract, not a map.
type categoryKeywords struct {
	category domain.ExpenseCategory
	keywords []string
}

var keywordTable = []categoryKeywords{
	{domain.CategoryFood, []string{
		"market", "migros", "carrefour", "bim", "şok", "a101", "restaurant",
		"restoran", "yemek", "kahve", "cafe", "starbucks", "mcdonalds",
		"burger", "pizza", "lokanta", "mutfak", "gıda", "food", "grocery",
		"süt", "ekmek", "et", "sebze", "meyve",
	}},
	{domain.CategoryTransport, []string{
		"benzin", "petrol", "shell", "bp", "opet", "lukoil", "taksi", "uber",
		"bitaksi", "otobüs", "metro", "dolmuş", "araç", "transport", "fuel",
		"garage", "oto", "servis", "lastik", "yağ", "akaryakıt",
	}},
	{domain.CategoryEntertainment, []string{
		"sinema", "cinema", "netflix", "spotify", "youtube", "disney",
		"amazon prime", "eglence", "oyun", "game", "konsol", "ps5", "xbox",
		"steam", "tiyatro", "konser", "müzik", "film", "kitap", "book",
	}},
	{domain.CategoryBills, []string{
		"elektrik", "su", "doğalgaz", "internet", "telefon", "vodafone",
		"turkcell", "türk telekom", "fatura", "bill", "abonelik",
		"subscription", "netflix", "spotify", "utilities", "belediye",
		"vergi", "tax",
	}},
	{domain.CategoryShopping, []string{
		"mağaza", "store", "shop", "amazon", "trendyol", "hepsiburada",
		"gittigidiyor", "zara", "h&m", "lcwaikiki", "koton", "defacto",
		"mango", "boyner", "giyim", "ayakkabı", "çanta", "teknoloji",
		"elektronik", "telefon", "laptop",
	}},
	{domain.CategoryHealth, []string{
		"eczane", "pharmacy", "hastane", "hospital", "doktor", "doctor",
		"ilac", "medicine", "sağlık", "health", "diş", "dental", "göz",
		"eye", "clinic", "klinik", "tedavi",
	}},
	{domain.CategoryEducation, []string{
		"okul", "school", "kurs", "course", "eğitim", "education", "kitap",
		"book", "kırtasiye", "stationery", "university", "üniversite",
		"özel ders", "dershane",
	}},
	{domain.CategoryHousing, []string{
		"kira", "rent", "ev", "home", "house", "apartman", "site", "housing",
		"tamir", "repair", "boyama", "paint", "mobilya", "furniture", "ikea",
	}},
	{domain.CategoryInvestment, []string{
		"yatırım", "investment", "hisse", "stock", "kripto", "crypto",
		"bitcoin", "borsa", "exchange", "fond", "fund", "altın", "gold",
		"döviz", "forex",
	}},
}

// necessaryCategories marks spending that covers essential needs.
var necessaryCategories = map[domain.ExpenseCategory]bool{
	domain.CategoryFood:      true,
	domain.CategoryBills:     true,
	domain.CategoryHealth:    true,
	domain.CategoryHousing:   true,
	domain.CategoryTransport: true,
}

// CategoryCatalog is the fixed display metadata served to clients.
func CategoryCatalog() []domain.CategoryMeta {
	return []domain.CategoryMeta{
		{Code: domain.CategoryFood, Name: "Gıda", Icon: "🍽️", Color: "#FF6B6B", Necessary: true},
		{Code: domain.CategoryTransport, Name: "Ulaşım", Icon: "🚗", Color: "#4ECDC4", Necessary: true},
		{Code: domain.CategoryEntertainment, Name: "Eğlence", Icon: "🎬", Color: "#FFD93D", Necessary: false},
		{Code: domain.CategoryBills, Name: "Faturalar", Icon: "🧾", Color: "#6C5CE7", Necessary: true},
		{Code: domain.CategoryShopping, Name: "Alışveriş", Icon: "🛍️", Color: "#FF8FB1", Necessary: false},
		{Code: domain.CategoryHealth, Name: "Sağlık", Icon: "🏥", Color: "#00B894", Necessary: true},
		{Code: domain.CategoryEducation, Name: "Eğitim", Icon: "📚", Color: "#0984E3", Necessary: false},
		{Code: domain.CategoryHousing, Name: "Konut", Icon: "🏠", Color: "#E17055", Necessary: true},
		{Code: domain.CategoryInvestment, Name: "Yatırım", Icon: "📈", Color: "#00CEC9", Necessary: false},
		{Code: domain.CategoryOther, Name: "Diğer", Icon: "📦", Color: "#B2BEC3", Necessary: false},
	}
}
