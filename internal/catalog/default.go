package catalog

import "github.com/dmitrijs2005/eventreg/internal/models"

var defaultEvents = []models.Event{
	{
		ID:        "e1",
		Badge:     "A",
		EventName: "event 1",
		Professor: "professor 1",
		Title:     "عنوان رویداد ۱",
		Subtitle:  "موضوع: معرفی",
		Desc:      "یک توضیح کوتاه درباره رویداد ۱. این متن نمونه است و می‌توانید بعداً آن را تغییر دهید.",
	},
	{
		ID:        "e2",
		Badge:     "B",
		EventName: "event 2",
		Professor: "professor 2",
		Title:     "عنوان رویداد ۲",
		Subtitle:  "موضوع: کارگاه",
		Desc:      "یک توضیح کوتاه درباره رویداد ۲. این متن نمونه است و می‌توانید بعداً آن را تغییر دهید.",
	},
	{
		ID:        "e3",
		Badge:     "C",
		EventName: "event 3",
		Professor: "professor 3",
		Title:     "عنوان رویداد ۳",
		Subtitle:  "موضوع: تجربه",
		Desc:      "یک توضیح کوتاه درباره رویداد ۳. این متن نمونه است و می‌توانید بعداً آن را تغییر دهید.",
	},
}

// Default returns the built-in three-event catalog.
func Default() *Catalog {
	c, err := New(defaultEvents)
	if err != nil {
		panic(err)
	}
	return c
}
