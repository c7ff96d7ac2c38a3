package board

type theme struct {
	key      string
	name     string
	currency string
	names    [Size]string
}

var themes = []theme{
	{key: "usa", name: "USA 🇺🇸", currency: "$", names: [Size]string{
		"START", "Times Square", "Community Chest", "Broadway", "Income Tax",
		"JFK Airport", "Hollywood Blvd", "Chance", "Silicon Valley", "Wall Street",
		"Prison", "Las Vegas Strip", "Electric Company", "Miami Beach", "Fifth Avenue",
		"LAX Airport", "Golden Gate", "Community Chest", "Chicago Loop", "Central Park",
		"Free Parking", "Beverly Hills", "Chance", "Rodeo Drive", "Manhattan",
		"O'Hare Airport", "Pennsylvania Ave", "White House", "Water Works", "Capitol Hill",
		"Go To Prison", "Empire State", "Statue of Liberty", "Community Chest", "Brooklyn Bridge",
		"Miami Airport", "Chance", "Trump Tower", "Luxury Tax", "One World Trade",
	}},
	{key: "turkey", name: "Türkiye 🇹🇷", currency: "₺", names: [Size]string{
		"BAŞLANGIÇ", "Taksim Meydanı", "Toplum Sandığı", "İstiklal Caddesi", "Gelir Vergisi",
		"İstanbul Havalimanı", "Bağdat Caddesi", "Şans", "Nişantaşı", "Bebek Sahili",
		"Hapishane", "Galata Kulesi", "Elektrik Şirketi", "Sultanahmet", "Topkapı Sarayı",
		"Ankara Esenboğa", "Kapalıçarşı", "Toplum Sandığı", "Bodrum Marina", "Çeşme Alaçatı",
		"Bedava Park", "Kızkulesi", "Şans", "Boğaz Köprüsü", "Dolmabahçe",
		"İzmir Adnan Menderes", "Anıtkabir", "Nemrut Dağı", "Su Şirketi", "Kapadokya",
		"Hapse Git", "Sapphire", "Zorlu Center", "Toplum Sandığı", "İstinye Park",
		"Antalya Havalimanı", "Şans", "Ortaköy", "Lüks Vergi", "Maslak Plazalar",
	}},
	{key: "germany", name: "Deutschland 🇩🇪", currency: "€", names: [Size]string{
		"START", "Alexanderplatz", "Gemeinschaftskasse", "Unter den Linden", "Einkommensteuer",
		"Berlin Brandenburg", "Kurfürstendamm", "Ereigniskarte", "Potsdamer Platz", "Brandenburger Tor",
		"Gefängnis", "Marienplatz", "Elektrizitätswerk", "Oktoberfest", "Neuschwanstein",
		"München Flughafen", "Checkpoint Charlie", "Gemeinschaftskasse", "Reichstag", "Berliner Dom",
		"Freies Parken", "Zeil Frankfurt", "Ereigniskarte", "Römerberg", "Kölner Dom",
		"Frankfurt Flughafen", "Rothenburg", "Heidelberg", "Wasserwerk", "Schwarzwald",
		"Gehe ins Gefängnis", "Mercedes Museum", "BMW Welt", "Gemeinschaftskasse", "Porsche Museum",
		"Hamburg Flughafen", "Ereigniskarte", "Miniatur Wunderland", "Luxussteuer", "Europa-Park",
	}},
	{key: "japan", name: "Japan 🇯🇵", currency: "¥", names: [Size]string{
		"スタート", "Shibuya Crossing", "Community Chest", "Harajuku", "所得税",
		"Narita Airport", "Ginza", "Chance", "Akihabara", "Shinjuku",
		"刑務所", "Tokyo Tower", "Electric Company", "Senso-ji Temple", "Meiji Shrine",
		"Haneda Airport", "Osaka Castle", "Community Chest", "Dotonbori", "Universal Studios",
		"Free Parking", "Mount Fuji", "Chance", "Kyoto Bamboo", "Fushimi Inari",
		"Kansai Airport", "Hiroshima Peace", "Miyajima", "Water Works", "Nara Deer Park",
		"刑務所へ", "Tokyo Skytree", "Rainbow Bridge", "Community Chest", "Tokyo Disney",
		"Chubu Airport", "Chance", "Roppongi Hills", "高級税", "Tokyo Midtown",
	}},
	{key: "china", name: "China 🇨🇳", currency: "¥", names: [Size]string{
		"开始", "Tiananmen Square", "Community Chest", "Forbidden City", "所得税",
		"Beijing Airport", "The Bund Shanghai", "Chance", "Nanjing Road", "Yu Garden",
		"监狱", "Great Wall", "Electric Company", "Summer Palace", "Temple of Heaven",
		"Shanghai Airport", "Terracotta Army", "Community Chest", "West Lake", "Zhangjiajie",
		"Free Parking", "Li River", "Chance", "Yellow Mountain", "Potala Palace",
		"Guangzhou Airport", "Hong Kong Harbor", "Victoria Peak", "Water Works", "Macau Casino",
		"去监狱", "Shanghai Tower", "Canton Tower", "Community Chest", "Oriental Pearl",
		"Shenzhen Airport", "Chance", "Ping An Tower", "奢侈税", "China World Trade",
	}},
	{key: "russia", name: "Russia 🇷🇺", currency: "₽", names: [Size]string{
		"СТАРТ", "Red Square", "Community Chest", "GUM Department", "Налог",
		"Sheremetyevo", "Arbat Street", "Шанс", "Tverskaya", "Kremlin",
		"ТЮРЬМА", "Saint Basil", "Electric Company", "Hermitage Museum", "Peterhof Palace",
		"Domodedovo", "Bolshoi Theatre", "Community Chest", "Nevsky Prospekt", "Church Savior",
		"Free Parking", "Lake Baikal", "Шанс", "Trans-Siberian", "Golden Ring",
		"Pulkovo Airport", "Kazan Kremlin", "Kizhi Island", "Water Works", "Kamchatka",
		"В ТЮРЬМУ", "Moscow City", "Ostankino Tower", "Community Chest", "Lakhta Center",
		"Vnukovo Airport", "Шанс", "Sochi Olympics", "Роскошный налог", "Federation Tower",
	}},
	{key: "world", name: "World 🌍", currency: "$", names: [Size]string{
		"START", "New York", "Community Chest", "Istanbul", "Income Tax",
		"Heathrow Airport", "Paris", "Chance", "London", "Rome",
		"Jail", "Tokyo", "Electric Company", "Sydney", "Dubai",
		"Singapore Airport", "Barcelona", "Community Chest", "Amsterdam", "Berlin",
		"Free Parking", "Hong Kong", "Chance", "Mumbai", "Shanghai",
		"Dubai Airport", "Moscow", "Seoul", "Water Works", "Toronto",
		"Go To Jail", "São Paulo", "Mexico City", "Community Chest", "Buenos Aires",
		"Los Angeles Airport", "Chance", "Las Vegas", "Luxury Tax", "Monaco",
	}},
}
