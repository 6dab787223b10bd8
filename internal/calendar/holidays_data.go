package calendar

// Mainland China statutory holidays as announced by the State Council.
// The shifts are irregular, so the table is authored rather than computed.
// Add a new block per year.

var holidays2025 = []Holiday{
	{Date: MustParseDate("2025-01-01"), Name: "元旦", Kind: KindHoliday},
	{Date: MustParseDate("2025-01-26"), Name: "春节调休", Kind: KindMakeupWorkday},
	{Date: MustParseDate("2025-01-28"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-01-29"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-01-30"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-01-31"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-02-01"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-02-02"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-02-03"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-02-04"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2025-02-08"), Name: "春节调休", Kind: KindMakeupWorkday},
	{Date: MustParseDate("2025-04-04"), Name: "清明节", Kind: KindHoliday},
	{Date: MustParseDate("2025-04-05"), Name: "清明节", Kind: KindHoliday},
	{Date: MustParseDate("2025-04-06"), Name: "清明节", Kind: KindHoliday},
	{Date: MustParseDate("2025-04-27"), Name: "劳动节调休", Kind: KindMakeupWorkday},
	{Date: MustParseDate("2025-05-01"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2025-05-02"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2025-05-03"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2025-05-04"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2025-05-05"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2025-05-31"), Name: "端午节", Kind: KindHoliday},
	{Date: MustParseDate("2025-06-01"), Name: "端午节", Kind: KindHoliday},
	{Date: MustParseDate("2025-06-02"), Name: "端午节", Kind: KindHoliday},
	{Date: MustParseDate("2025-09-28"), Name: "国庆调休", Kind: KindMakeupWorkday},
	{Date: MustParseDate("2025-10-01"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-02"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-03"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-04"), Name: "中秋节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-05"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-06"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-07"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-08"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2025-10-11"), Name: "国庆调休", Kind: KindMakeupWorkday},
}

var holidays2026 = []Holiday{
	{Date: MustParseDate("2026-01-01"), Name: "元旦", Kind: KindHoliday},
	{Date: MustParseDate("2026-01-02"), Name: "元旦", Kind: KindHoliday},
	{Date: MustParseDate("2026-01-03"), Name: "元旦", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-14"), Name: "春节调休", Kind: KindMakeupWorkday},
	{Date: MustParseDate("2026-02-17"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-18"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-19"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-20"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-21"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-22"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-23"), Name: "春节", Kind: KindHoliday},
	{Date: MustParseDate("2026-02-28"), Name: "春节调休", Kind: KindMakeupWorkday},
	{Date: MustParseDate("2026-04-04"), Name: "清明节", Kind: KindHoliday},
	{Date: MustParseDate("2026-04-05"), Name: "清明节", Kind: KindHoliday},
	{Date: MustParseDate("2026-04-06"), Name: "清明节", Kind: KindHoliday},
	{Date: MustParseDate("2026-04-26"), Name: "劳动节调休", Kind: KindMakeupWorkday},
	{Date: MustParseDate("2026-05-01"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2026-05-02"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2026-05-03"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2026-05-04"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2026-05-05"), Name: "劳动节", Kind: KindHoliday},
	{Date: MustParseDate("2026-06-19"), Name: "端午节", Kind: KindHoliday},
	{Date: MustParseDate("2026-06-20"), Name: "端午节", Kind: KindHoliday},
	{Date: MustParseDate("2026-06-21"), Name: "端午节", Kind: KindHoliday},
	{Date: MustParseDate("2026-09-25"), Name: "中秋节", Kind: KindHoliday},
	{Date: MustParseDate("2026-09-26"), Name: "中秋节", Kind: KindHoliday},
	{Date: MustParseDate("2026-09-27"), Name: "中秋节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-01"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-02"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-03"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-04"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-05"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-06"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-07"), Name: "国庆节", Kind: KindHoliday},
	{Date: MustParseDate("2026-10-10"), Name: "国庆调休", Kind: KindMakeupWorkday},
}

// DefaultTable returns the built-in table for 2025 and 2026.
func DefaultTable() Table {
	all := make([]Holiday, 0, len(holidays2025)+len(holidays2026))
	all = append(all, holidays2025...)
	all = append(all, holidays2026...)
	return NewTable(all...)
}
