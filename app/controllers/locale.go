package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmcfuji/studiosite/internal/pkg/viewmodel"
)

const DefaultLocale = "ja"

var SupportedLocales = []string{"ja", "en"}

// IsSupportedLocale reports whether locale has translations
func IsSupportedLocale(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// RequireLocale redirects requests for an unknown locale to the same path under the default
// locale, so /fr/gallery becomes /ja/gallery.
func RequireLocale(c *fiber.Ctx) error {
	locale := c.Params("locale")
	if IsSupportedLocale(locale) {
		c.Locals("locale", locale)
		return c.Next()
	}

	rest := strings.TrimPrefix(c.Path(), "/"+locale)
	target := "/" + DefaultLocale + rest
	if q := string(c.Request().URI().QueryString()); q != "" {
		target += "?" + q
	}
	return c.Redirect(target, fiber.StatusFound)
}

func currentLocale(c *fiber.Ctx) string {
	if l, ok := c.Locals("locale").(string); ok && l != "" {
		return l
	}
	if l := c.Params("locale"); IsSupportedLocale(l) {
		return l
	}
	return DefaultLocale
}

// otherLocale is the target of the language switcher
func otherLocale(locale string) string {
	if locale == "ja" {
		return "en"
	}
	return "ja"
}

var messages = map[string]map[string]string{
	"ja": {
		"site_name":          "DMC FUJI",
		"nav_home":           "ホーム",
		"nav_service":        "サービス",
		"nav_gallery":        "ギャラリー",
		"nav_contact":        "お問い合わせ",
		"gallery_title":      "ギャラリー",
		"gallery_lead":       "着物撮影とスタジオの作品集",
		"filter_all":         "すべて",
		"no_images":          "画像が見つかりませんでした",
		"image_error":        "画像を読み込めませんでした",
		"prev":               "前へ",
		"next":               "次へ",
		"close":              "閉じる",
		"prev_image":         "前の画像",
		"next_image":         "次の画像",
		"contact_title":      "お問い合わせ",
		"contact_lead":       "撮影やスタジオのご予約、ご質問はこちらからどうぞ。",
		"field_name":         "お名前",
		"field_email":        "メールアドレス",
		"field_phone":        "電話番号",
		"field_service":      "ご希望のサービス",
		"field_message":      "お問い合わせ内容",
		"service_none":       "選択してください",
		"service_camu":       "花夢 (CAMU) - 着物撮影",
		"service_chloe":      "Chloe - レンタルスタジオ",
		"service_cafe":       "アンティークカフェ",
		"service_other":      "その他",
		"submit":             "送信する",
		"contact_success":    "お問い合わせを送信しました。確認メールをお送りしましたのでご確認ください。",
		"contact_error":      "送信に失敗しました。時間をおいて再度お試しください。",
		"contact_invalid":    "入力内容をご確認ください。",
		"home_lead":          "富士市の着物撮影スタジオ",
		"service_title":      "サービス",
		"service_camu_title": "花夢 (CAMU) 着物撮影",
		"service_camu_lead":  "成人式・七五三・記念日の着物撮影。着付けとヘアメイクも承ります。",
		"service_chloe_lead": "アンティーク家具に囲まれたレンタルスタジオ。",
		"hours":              "営業時間: 11:00〜17:00（定休日: 水曜日）",
		"address":            "〒417-0001 静岡県富士市荒田島町1-13 ラシェット1",
	},
	"en": {
		"site_name":          "DMC FUJI",
		"nav_home":           "Home",
		"nav_service":        "Services",
		"nav_gallery":        "Gallery",
		"nav_contact":        "Contact",
		"gallery_title":      "Gallery",
		"gallery_lead":       "Kimono photography and studio works",
		"filter_all":         "All",
		"no_images":          "No images found",
		"image_error":        "Image could not be loaded",
		"prev":               "Previous",
		"next":               "Next",
		"close":              "Close",
		"prev_image":         "Previous image",
		"next_image":         "Next image",
		"contact_title":      "Contact",
		"contact_lead":       "Questions and bookings for photo sessions and the studio.",
		"field_name":         "Name",
		"field_email":        "Email",
		"field_phone":        "Phone",
		"field_service":      "Service",
		"field_message":      "Message",
		"service_none":       "Please select",
		"service_camu":       "CAMU - Kimono Photography",
		"service_chloe":      "Chloe - Rental Studio",
		"service_cafe":       "Antique Cafe",
		"service_other":      "Other",
		"submit":             "Send",
		"contact_success":    "Your message has been sent. Please check your inbox for our confirmation.",
		"contact_error":      "Sending failed. Please try again later.",
		"contact_invalid":    "Please check your input.",
		"home_lead":          "Ceremonial kimono photo studio in Fuji",
		"service_title":      "Services",
		"service_camu_title": "CAMU Kimono Photography",
		"service_camu_lead":  "Kimono portraits for coming-of-age, shichi-go-san and anniversaries, with dressing and hair styling.",
		"service_chloe_lead": "A rental studio furnished with antiques.",
		"hours":              "Business Hours: 11:00–17:00 (Closed: Wednesday)",
		"address":            "1-13 Aratajimacho, Fuji-shi, Shizuoka, 417-0001, Japan",
	},
}

func translations(locale string) map[string]string {
	if m, ok := messages[locale]; ok {
		return m
	}
	return messages[DefaultLocale]
}

// pageData holds what every layout render needs
func pageData(c *fiber.Ctx, title string) fiber.Map {
	locale := currentLocale(c)
	t := translations(locale)
	if title == "" {
		title = t["site_name"]
	} else {
		title = title + " | " + t["site_name"]
	}
	return fiber.Map{
		"OG":          viewmodel.NewOpenGraph(title, t["home_lead"], c.Path(), locale),
		"Title":       title,
		"Locale":      locale,
		"OtherLocale": otherLocale(locale),
		"SwitchPath":  "/" + otherLocale(locale) + strings.TrimPrefix(c.Path(), "/"+locale),
		"T":           t,
	}
}
