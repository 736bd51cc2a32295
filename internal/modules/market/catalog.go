package market

// MarketList is the curated instrument catalog served at /market/list.
// The desktop and web clients use it to map tickers to display names.
var MarketList = []Instrument{
	{Code: "AAPL", Name: "애플 (Apple)", Currency: "USD"},
	{Code: "NVDA", Name: "엔비디아 (Nvidia)", Currency: "USD"},
	{Code: "TSLA", Name: "테슬라 (Tesla)", Currency: "USD"},
	{Code: "005930.KS", Name: "삼성전자", Currency: "KRW"},
	{Code: "000660.KS", Name: "SK하이닉스", Currency: "KRW"},
	{Code: "035420.KS", Name: "NAVER", Currency: "KRW"},
}

// BrowseCatalog is the browse listing served at /market-list.
var BrowseCatalog = []CatalogEntry{
	{Code: "AAPL", Name: "Apple"},
	{Code: "NVDA", Name: "Nvidia"},
	{Code: "TSLA", Name: "Tesla"},
	{Code: "005930.KS", Name: "삼성전자"},
	{Code: "000660.KS", Name: "SK하이닉스"},
}

// trendingFallback is served when the provider's trending lookup fails.
var trendingFallback = []string{"AAPL", "TSLA", "NVDA", "MSFT", "AMZN"}

// trendingStaples are always merged into trending results so the list never
// feels empty when the provider returns few symbols.
var trendingStaples = []string{"AAPL", "TSLA", "NVDA", "MSFT", "GOOGL", "AMZN", "META", "AMD"}
