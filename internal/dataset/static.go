package dataset

import "github.com/verte-zerg/glyphscope/internal/model"

// Versions is the hand-curated release history of the Unicode standard with
// the cumulative number of assigned characters.
var Versions = []model.UnicodeVersion{
	{Version: "1.0", Year: 1991, TotalChars: 7096},
	{Version: "1.0.1", Year: 1992, TotalChars: 28294},
	{Version: "1.1", Year: 1993, TotalChars: 34168},
	{Version: "2.0", Year: 1996, TotalChars: 38885},
	{Version: "2.1", Year: 1998, TotalChars: 38887},
	{Version: "3.0", Year: 1999, TotalChars: 49194},
	{Version: "3.1", Year: 2001, TotalChars: 94140},
	{Version: "3.2", Year: 2002, TotalChars: 95156},
	{Version: "4.0", Year: 2003, TotalChars: 96382},
	{Version: "4.1", Year: 2005, TotalChars: 97655},
	{Version: "5.0", Year: 2006, TotalChars: 99024},
	{Version: "5.1", Year: 2008, TotalChars: 100648},
	{Version: "5.2", Year: 2009, TotalChars: 107296},
	{Version: "6.0", Year: 2010, TotalChars: 109384},
	{Version: "6.1", Year: 2012, TotalChars: 110116},
	{Version: "6.2", Year: 2012, TotalChars: 110117},
	{Version: "6.3", Year: 2013, TotalChars: 110122},
	{Version: "7.0", Year: 2014, TotalChars: 112956},
	{Version: "8.0", Year: 2015, TotalChars: 120672},
	{Version: "9.0", Year: 2016, TotalChars: 128172},
	{Version: "10.0", Year: 2017, TotalChars: 136690},
	{Version: "11.0", Year: 2018, TotalChars: 137374},
	{Version: "12.0", Year: 2019, TotalChars: 137928},
	{Version: "12.1", Year: 2019, TotalChars: 137929},
	{Version: "13.0", Year: 2020, TotalChars: 143859},
	{Version: "14.0", Year: 2021, TotalChars: 144697},
	{Version: "15.0", Year: 2022, TotalChars: 149186},
	{Version: "15.1", Year: 2023, TotalChars: 149813},
	{Version: "16.0", Year: 2024, TotalChars: 154998},
	{Version: "17.0", Year: 2025, TotalChars: 159801},
}

// Timeline is the road from telegraph codes to Unicode 1.0.
var Timeline = []model.TimelineEvent{
	{Year: 1837, Title: "Morse code emerges", Text: "Samuel Morse and Alfred Vail encode letters as dots and dashes for the electric telegraph."},
	{Year: 1874, Title: "Baudot's five-bit breakthrough", Text: "Émile Baudot's fixed-length five-bit code lets machines, not operators, decode text."},
	{Year: 1961, Title: "Push for standardization", Text: "Dozens of incompatible vendor codes lead the American Standards Association to start work on a common one."},
	{Year: 1963, Title: "The first ASCII", Text: "ASA X3.4-1963 defines a seven-bit code with upper-case letters, digits and punctuation but no lower case."},
	{Year: 1967, Title: "A major revision", Text: "Lower-case letters arrive and the control characters are rearranged into the layout still used today."},
	{Year: 1968, Title: "Federal adoption", Text: "President Johnson mandates ASCII for all computers bought by the United States federal government."},
	{Year: 1987, Title: "Unicode conceived", Text: "Joe Becker, Lee Collins and Mark Davis sketch a single character set large enough for every living script."},
	{Year: 1991, Title: "The birth of Unicode 1.0", Text: "The Unicode Consortium publishes version 1.0 with 7,096 characters."},
}
