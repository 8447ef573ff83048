package feed

import (
	"encoding/xml"
)

// digestFeed is the RSS 2.0 document of one digest target
type digestFeed struct {
	XMLName xml.Name      `xml:"rss"`
	Version string        `xml:"version,attr"`
	Atom    string        `xml:"xmlns:atom,attr"`
	Channel digestChannel `xml:"channel"`
}

// digestChannel carries the digest header and tally, category is the target key
type digestChannel struct {
	Title         string       `xml:"title"`
	Link          string       `xml:"link"`
	Description   string       `xml:"description"`
	Category      string       `xml:"category"`
	Generator     string       `xml:"generator"`
	SelfLink      selfLink     `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string       `xml:"lastBuildDate"`
	Items         []digestItem `xml:"item"`
}

type selfLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// digestItem is a news item, source element points to the registry source it came from
type digestItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link,omitempty"`
	GUID        itemGUID   `xml:"guid"`
	Description string     `xml:"description"`
	Category    string     `xml:"category"`
	Source      itemSource `xml:"source"`
}

type itemGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type itemSource struct {
	URL  string `xml:"url,attr"`
	Name string `xml:",chardata"`
}
