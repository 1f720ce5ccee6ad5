package extract

import (
	"time"

	"ddp/internal/aggregate"
	"ddp/internal/locale"
	"ddp/internal/records"
	"ddp/internal/table"
)

func tr(de, en, nl string) locale.Text {
	return locale.Text{locale.DE: de, locale.EN: en, locale.NL: nl}
}

func entry(key string, title locale.Text, fn Func) Descriptor {
	return Descriptor{Key: key, Patterns: []string{key}, Source: SourceEntry, Title: title, Extract: fn}
}

var (
	colReactions    = tr("Anzahl der Reaktionen", "Count of reactions", "Aantal reacties")
	colSavedContent = tr("Anzahl gespeicherter Beiträge", "Count of saved content", "Aantal opgeslagen inhoud")
	colMessage      = tr("Nachricht", "Message", "Bericht")
	colSent         = tr("Gesendete Nachrichten", "Sent messages", "Verzonden berichten")
	colConversation = tr("Unterhaltungen", "Conversations", "Gesprekken")
	colPostsViewed  = tr("Gesehene Posts", "Viewed posts", "Bekeken berichten")
	colVideosViewed = tr("Gesehene Videos", "Viewed videos", "Bekeken video's")
)

var inactive = map[string]bool{"Inaktiv": true, "Inactive": true, "Inactief": true}

func instagramArtifacts() []Descriptor {
	return []Descriptor{
		entry("ads_clicked",
			tr("Wie oft haben Sie Werbung angeklickt? [pro Tag]",
				"On how many ads did you click? [per day]",
				"Hoeveel productnamen (advertenties) heb je aangeklikt? [per dag]"),
			DailyCollect([]any{"impressions_history_ads_clicked"}, listTimestamp, []any{"title"},
				tr("Angeklickte Werbung", "Clicked ad", "Geklikte advertentie"),
				tr("Unbekannt", "Unknown", "Onbekend"))),
		entry("ads_viewed",
			tr("Wie oft haben Sie Werbung angesehen? [pro Tag]",
				"How often did you see ads? [per day]",
				"Hoe vaak heb je advertenties gezien? [per dag]"),
			DailyCollect([]any{"impressions_history_ads_seen"}, timeTimestamp, []any{"string_map_data", "Author", "value"},
				tr("Gesehene Konten", "Seen accounts", "Geziene accounts"),
				tr("Unbekanntes Konto", "Unknown account", "Onbekend account"))),
		entry("posts_viewed",
			tr("Wie oft haben Sie Posts angesehen? [pro Tag]",
				"How often did you view posts? [per day]",
				"Hoe vaak heb je berichten bekeken? [per dag]"),
			DailyCount([]any{"impressions_history_posts_seen"}, timeTimestamp,
				tr("Anzahl der gesehenen Posts", "Count of viewed posts", "Aantal bekeken berichten"))),
		entry("videos_watched",
			tr("Wie oft haben Sie Reels und Story-Videos gesehen? [pro Tag]",
				"How often did you watch Reels and Story videos? [per day]",
				"Hoe vaak heb je Reels en Story-video's bekeken? [per dag]"),
			DailyCount([]any{"impressions_history_videos_watched"}, timeTimestamp,
				tr("Anzahl der gesehenen Videos", "Count of viewed videos", "Aantal bekeken video's"))),
		entry("subscription_for_no_ads",
			tr("Nutzen Sie Instagrams kostenpflichtige Abo-Option, mit der Ihnen keine Werbeinhalte angezeigt werden?",
				"Do you use Instagram's paid subscription option that doesn't show you ads?",
				"Gebruik je Instagram's betaalde abonnementsoptie die geen advertenties weergeeft?"),
			Indicator(tr("Abo-Option für Werbefreiheit", "Subscription for no ads", "Abonnement zonder advertenties"),
				func(in *Input) (any, error) {
					v, err := records.LookupString(in.Record, "label_values", 0, "value")
					if err != nil {
						return nil, err
					}
					return !inactive[v], nil
				})),
		entry("blocked_accounts",
			tr("Wie oft haben Sie andere Instagramkonten blockiert oder eingeschränkt? [pro Tag]",
				"How often did you block or restrict other Instagram accounts? [per day]",
				"Hoe vaak heb je andere Instagram-accounts geblokkeerd of beperkt? [per dag]"),
			DailyCount([]any{"relationships_blocked_users"}, listTimestamp,
				tr("Anzahl blockierter Konten", "Count of blocked account", "Aantal geblokkeerde accounts"))),
		entry("close_friends",
			tr(`Wie oft haben Sie Follower als "enge Freunde" hinzugefügt? [pro Tag]`,
				`How often did you add followers as "close friends"? [per day]`,
				`Hoe vaak heb je volgers toegevoegd als "goede vrienden"? [per dag]`),
			DailyCount([]any{"relationships_close_friends"}, listTimestamp,
				tr(`Anzahl "enger Freunde"`, "Count of close friends", "Aantal beste vrienden"))),
		entry("followers_1",
			tr("Wie oft haben Sie neue Follower? [pro Tag]",
				"How often did you gain new followers? [per day]",
				"Hoe vaak heb je nieuwe volgers gekregen? [per dag]"),
			DailyCount(nil, listTimestamp,
				tr("Anzahl der Follower", "Count of followers", "Aantal volgers"))),
		entry("followers_and_following/following",
			tr("Wie vielen Konten folgen Sie?",
				"How many accounts do you follow?",
				"Hoeveel accounts volg je?"),
			CountItems([]any{"relationships_following"},
				tr("Anzahl gefolgter Konten", "Count of followed accounts", "Aantal gevolgde accounts"))),
		entry("follow_requests_you've_received",
			tr("Wie oft erhalten Sie Followeranfragen? [pro Tag]",
				"How often did you receive follower requests? [per day]",
				"Hoe vaak heb je volgverzoeken ontvangen? [per dag]"),
			DailyCount([]any{"relationships_follow_requests_received"}, listTimestamp,
				tr("Anzahl der Followeranfragen", "Count of received follow requests", "Aantal ontvangen volgverzoeken"))),
		entry("hide_story_from",
			tr("Für wie viele Konten verstecken Sie Ihre Story? [pro Tag]",
				"How many accounts did you hide your story from? [per day]",
				"Hoe vaak heb je je verhaal verborgen voor accounts? [per dag]"),
			DailyCount([]any{"relationships_hide_stories_from"}, listTimestamp,
				tr("Anzahl der versteckten Stories", "Count of hidden stories", "Aantal verborgen verhalen"))),
		entry("pending_follow_requests",
			tr("Wie oft ignorieren Sie Followeranfragen? [pro Tag]",
				"How often did you ignore follower requests? [per day]",
				"Hoe vaak heb je volgverzoeken genegeerd? [per dag]"),
			DailyCount([]any{"relationships_follow_requests_sent"}, listTimestamp,
				tr("Anzahl ignorierter Followeranfragen", "Count of pending follow requests", "Aantal wachtende volgverzoeken"))),
		entry("recently_unfollowed_accounts",
			tr("Wie vielen Konten folgen Sie seit Kurzem nicht mehr? [pro Tag]",
				"How many accounts did you recently stop following? [per day]",
				"Hoe vaak ben je recent accounts gestopt te volgen? [per dag]"),
			DailyCount([]any{"relationships_unfollowed_users"}, listTimestamp,
				tr("Anzahl der entfolgten Konten", "Count of recently unfollowed accounts", "Aantal recent ontvolgde accounts"))),
		entry("removed_suggestions",
			tr("Wie oft haben Sie Konten aus Ihren Vorschlägen entfernt? [pro Tag]",
				"How often did you remove accounts from your suggestions? [per day]",
				"Hoe vaak heb je accounts uit je suggesties verwijderd? [per dag]"),
			DailyCount([]any{"relationships_dismissed_suggested_users"}, listTimestamp,
				tr("Anzahl der entfernten Vorschläge", "Count of removed suggestions", "Aantal verwijderde suggesties"))),
		entry("restricted_accounts",
			tr("Wie oft haben Sie Konten eingeschränkt? [pro Tag]",
				"How often did you restrict accounts? [per day]",
				"Hoe vaak heb je accounts beperkt? [per dag]"),
			DailyCount([]any{"relationships_restricted_users"}, listTimestamp,
				tr("Anzahl der eingeschränkten Konten", "Count of restricted accounts", "Aantal beperkte accounts"))),
		entry("notification_of_privacy_policy_updates",
			tr("Wann haben Sie die Updates der Meta-Datenschutzrichtlinie angesehen?",
				"When did you view updates to the Meta Privacy Policy?",
				"Wanneer heb je updates van het Meta-privacybeleid bekeken?"),
			privacyPolicyUpdates),
		entry("personal_information/account_information",
			tr("Haben Sie die Kontaktsynchronisierung aktiviert?",
				"Have you enabled contact syncing?",
				"Heb je contact synchronisatie ingeschakeld?"),
			Indicator(tr("Kontaktsynchronisierung aktiviert", "Contact syncing enabled", "Contact synchronisatie ingeschakeld"),
				func(in *Input) (any, error) {
					insights, err := records.Lookup(in.Record, "profile_account_insights", 0)
					if err != nil {
						return nil, err
					}
					v, _ := field(insights, "value", "Contact Syncing", "Kontaktsynchronisierung", "Synchronisation des contacts")
					return v, nil
				})),
		entry("linked_meta_accounts",
			tr("Welche Ihrer Konten sind bei Meta verbunden?",
				"Which accounts are connected at Meta?",
				"Welke accounts zijn verbonden bij Meta?"),
			linkedMetaAccounts),
		entry("personal_information/personal_information.json",
			tr("Haben Sie ein Profilbild, E-Mail, Telefon, und ein privates Konto? Verwenden Sie einen echten Namen?",
				"Do you have a profile image, email, phone, a private account, and do you use your real name?",
				"Heb je een profielfoto, e-mail, telefoon, een privéaccount en gebruik je je echte naam?"),
			personalInformation),
		entry("profile_changes",
			tr("Wann haben Sie Ihre persönlichen Informationen geändert?",
				"When did you change your personal information?",
				"Wanneer heb je je persoonlijke informatie gewijzigd?"),
			profileChanges),
		entry("comments_allowed_from",
			tr("Von welchen Konten erlauben Sie Kommentare unter ihren Beiträgen?",
				"Which accounts do you allow comments from?",
				"Van welke accounts sta je reacties toe?"),
			commentsAllowedFrom),
		entry("comments_blocked_from",
			tr("Wie viele Konten haben Sie blockiert, keine Kommentare mehr schreiben zu können?",
				"How many accounts did you block from commenting?",
				"Hoe vaak heb je accounts geblokkeerd voor reacties?"),
			CountItems([]any{"settings_blocked_commenters"},
				tr("Anzahl blockierter Konten", "Count of blocked accounts", "Aantal geblokkeerde accounts"))),
		entry("consents",
			tr("Wozu haben Sie wann zugestimmt?",
				"What did you agree to when?",
				"Waarmee heb je wanneer ingestemd?"),
			consents),
		entry("use_cross-app_messaging",
			tr("Verwenden Sie einen gemeinsamen Messenger für Facebook und Instagram?",
				"Do you use the messenger for Facebook and Instagram?",
				"Gebruik je de messenger voor Facebook en Instagram?"),
			crossAppMessaging),
		entry("your_topics",
			tr("Was sind Ihre, von Instagram abgeleiteten, Themen?",
				"What are your Topics inferred by Instagram?",
				"Je onderwerpen afgeleid door Instagram?"),
			FlatList([]any{"topics_your_topics"}, []any{"string_map_data", "Name", "value"},
				tr("Ihre Themen", "Your topics", "Uw onderwerpen"))),
		entry("account_privacy_changes",
			tr("Wann haben Sie Ihr Konto auf öffentlich oder privat umgestellt?",
				"When did you switch your account to being public/private?",
				"Wanneer heb je je account openbaar/privé gezet?"),
			accountPrivacyChanges),
		entry("login_activity",
			tr("Wann und mit welchem Gerät haben Sie sich bei Instagram angemeldet?",
				"When and with which user agent did you log in to Instagram?",
				"Wanneer en met welke user-agent heb je ingelogd op Instagram?"),
			sessionActivity("account_history_login_history")),
		entry("logout_activity",
			tr("Wann und mit welchem Gerät haben Sie sich Instagram abgemeldet?",
				"When and with which user agent did you log out of Instagram?",
				"Wanneer en met welke user agent heb je uitgelogd op Instagram?"),
			sessionActivity("account_history_logout_history")),
		entry("signup_information",
			tr("Haben Sie einen echten Namen verwendet, um sich bei Instagram anzumelden?",
				"Did you use a real name to signup on Instagram?",
				"Heb je een echte naam gebruikt om je aan te melden bij Instagram?"),
			Indicator(tr("Echter Name bei Anmeldung", "Real Name at signup", "Echte naam bij aanmelding"),
				func(in *Input) (any, error) {
					info, err := records.Lookup(in.Record, "account_history_registration_info", 0)
					if err != nil {
						return nil, err
					}
					name, _ := field(info, "value", "Username", "Benutzername")
					s, _ := name.(string)
					return in.Names.RealName(s), nil
				})),
		entry("recently_viewed_items",
			tr("Welche Einkaufsartikel haben Sie sich kürzlich angesehen?",
				"Which shopping items have you recently viewed?",
				"Welke winkelartikelen heb je onlangs bekeken?"),
			FlatList([]any{"checkout_saved_recently_viewed_products"}, []any{"string_map_data", "Product Name", "value"},
				tr("Kürzlich gesehene Einkaufsartikel", "Recently viewed items", "Recent bekeken items"))),
		entry("post_comments_1",
			tr("Wie oft haben Sie Beiträge kommentiert? [pro Tag]",
				"How often did you comment on posts? [per day]",
				"Hoe vaak heb je op berichten gereageerd? [per dag]"),
			DailyCount(nil, timeTimestamp,
				tr("Anzahl der Post-Kommentare", "Count of post comments", "Aantal reacties op berichten"))),
		entry("reels_comments",
			tr("Wie oft haben Sie Reels kommentiert? [pro Tag]",
				"How often did you comment on reels? [per day]",
				"Hoe vaak heb je op reels gereageerd? [per dag]"),
			DailyCount([]any{"comments_reels_comments"}, timeTimestamp,
				tr("Anzahl der Reel-Kommentare", "Count of reel comments", "Aantal reacties op reels"))),
		media(entry("archived_posts",
			tr("Wie oft haben Sie Beiträge archiviert und welche Informationen waren enthalten? [pro Tag]",
				"How often did you archive posts and what information was included? [per day]",
				"Hoe vaak heb je berichten gearchiveerd en welke informatie was inbegrepen? [per dag]"),
			MediaPosts([]any{"ig_archived_post_media"}, true))),
		media(entry("posts_1",
			tr("Wie oft haben Sie Posts veröffentlicht und welche Informationen waren enthalten? [pro Tag]",
				"How often did you post and what information was included? [per day]",
				"Hoe vaak heb je gepost en welke informatie was inbegrepen? [per dag]"),
			MediaPosts(nil, true))),
		media(entry("profile_photos",
			tr("Verwenden Sie ein Gesicht in ihrem Profilfoto?",
				"Do you use a face in your profile photo?",
				"Gebruik je een gezicht in je profielfoto?"),
			Indicator(tr("Gesicht sichtbar", "Face visible", "Gezicht zichtbaar"),
				func(in *Input) (any, error) {
					uri, err := records.LookupString(in.Record, "ig_profile_picture", 0, "uri")
					if err != nil {
						return nil, err
					}
					return in.Pictures.Face(uri), nil
				}))),
		media(entry("recently_deleted_content",
			tr("Wie oft haben Sie Beiträge gelöscht und welche Informationen waren enthalten? [pro Tag]",
				"How often did you delete posts and what information was included? [per day]",
				"Hoe vaak heb je berichten verwijderd en welke informatie was inbegrepen? [per dag]"),
			MediaPosts([]any{"ig_recently_deleted_media"}, true))),
		entry("content/reels",
			tr("Wie oft haben Sie Reels gepostet? [pro Tag]",
				"How often did you post reels? [per day]",
				"Hoe vaak heb je reels gepost? [per dag]"),
			MediaCount([]any{"ig_reels_media"}, true,
				tr("Anzahl der Reels", "Count of reels", "Aantal reels"))),
		media(entry("stories",
			tr("Wie oft haben Sie Stories gepostet und haben Sie Standortinformationen hinzugefügt? [pro Tag]",
				"How often did you post stories and did you include location information? [per day]",
				"Hoe vaak heb je stories gepost en heb je locatie-informatie toegevoegd? [per dag]"),
			MediaPosts([]any{"ig_stories"}, false))),
		entry("liked_comments",
			tr(`Wie oft haben Sie Kommentare "geliked"? [pro Tag]`,
				"How often did you like comments? [per day]",
				"Hoe vaak heb je op reacties geliked? [per dag]"),
			DailyCount([]any{"likes_comment_likes"}, listTimestamp,
				tr(`Anzahl "gelikter" Kommentare`, "Count of liked comments", "Aantal gelikete reacties"))),
		entry("liked_posts",
			tr(`Wie oft haben Sie Beiträge "geliked"? [pro Tag]`,
				"How often did you like posts? [per day]",
				"Hoe vaak heb je op berichten geliked? [per dag]"),
			DailyCount([]any{"likes_media_likes"}, listTimestamp,
				tr(`Anzahl "gelikter" Posts`, "Count of liked posts", "Aantal gelikete berichten"))),
		entry("saved_collections",
			tr("Wie oft haben Sie Beiträge oder Reels gespeichert und mit jemandem geteilt? [pro Tag]",
				"How often did you save posts or reels and shared it with someone? [per day]",
				"Hoe vaak heb je berichten of reels opgeslagen en met iemand gedeeld? [per dag]"),
			savedContent("saved_collections", "saved_saved_collections", "Added Time", "Hinzugefügt am")),
		entry("saved_posts",
			tr("Wie oft haben Sie Beiträge oder Reels gespeichert? [pro Tag]",
				"How often did you save posts or reels? [per day]",
				"Hoe vaak heb je berichten of reels opgeslagen? [per dag]"),
			savedContent("saved_posts", "saved_saved_media", "Saved on", "Gespeichert am")),
		entry("countdowns",
			tr("Wie oft haben Sie auf einen Countdown in einer Story reagiert? [pro Tag]",
				"How often did you react to a countdown in a story? [per day]",
				"Hoe vaak heb je gereageerd op een aftelklok in een story? [per dag]"),
			DailyCount([]any{"story_activities_countdowns"}, listTimestamp, colReactions)),
		entry("emoji_sliders",
			tr("Wie oft haben Sie auf einen Emoji-Slider in einer Story reagiert? [pro Tag]",
				"How often did you react to an emoji slider in a story? [per day]",
				"Hoe vaak heb je gereageerd op een emoji-slider in een story? [per dag]"),
			DailyCount([]any{"story_activities_emoji_sliders"}, listTimestamp, colReactions)),
		entry("polls",
			tr("Wie oft haben Sie auf eine Umfrage in einer Story reagiert? [pro Tag]",
				"How often did you react to a poll in a story? [per day]",
				"Hoe vaak heb je gereageerd op een poll in een story? [per dag]"),
			DailyCount([]any{"story_activities_polls"}, listTimestamp, colReactions)),
		entry("questions",
			tr("Wie oft haben Sie eine Frage in einer Story beantwortet? [pro Tag]",
				"How often did you answer a question in a story? [per day]",
				"Hoe vaak heb je een vraag in een story beantwoord? [per dag]"),
			DailyCount([]any{"story_activities_questions"}, listTimestamp, colReactions)),
		entry("quizzes",
			tr("Wie oft haben Sie ein Quiz in einer Story beantwortet? [pro Tag]",
				"How often did you answer a quiz in a story? [per day]",
				"Hoe vaak heb je een quiz in een story beantwoord? [per dag]"),
			DailyCount([]any{"story_activities_quizzes"}, listTimestamp, colReactions)),
		entry("story_likes",
			tr(`Wie oft haben Sie eine Story "geliked"? [pro Tag]`,
				"How often did you like a story? [per day]",
				"Hoe vaak heb je een story geliked? [per dag]"),
			DailyCount([]any{"story_activities_story_likes"}, listTimestamp,
				tr(`Anzahl "gelikter" Stories`, "Count of liked stories", "Aantal gelikete stories"))),
		{
			Key:      "messages",
			Patterns: []string{records.MessagesPattern},
			Source:   SourceMessages,
			Title: tr("Wie viele Nachrichten haben Sie pro Tag verschickt und in wie vielen Unterhaltungen?",
				"How many messages did you send per day and in how many conversations?",
				"Hoeveel berichten heb je per dag verstuurd en in hoeveel gesprekken?"),
			Extract: sentMessages,
		},
		{
			Key:      "messaging_sessions",
			Patterns: []string{records.MessagesPattern},
			Source:   SourceMessages,
			Title: tr("Wie viele Nachrichten-Sitzungen hatten Sie pro Tag und wie lange waren Sie aktiv?",
				"How many messaging sessions did you have per day and how long were you active?",
				"Hoeveel berichtensessies had je per dag en hoe lang was je actief?"),
			Extract: messagingSessions,
		},
		{
			Key:    "content_viewing",
			Source: SourceCombined,
			Slots: []records.Slot{
				{Name: "posts_viewed", Patterns: []string{"posts_viewed"}},
				{Name: "videos_watched", Patterns: []string{"videos_watched"}},
			},
			Title: tr("Wie viele Posts und Videos haben Sie pro Tag angesehen und in wie vielen Sitzungen?",
				"How many posts and videos did you view per day and in how many sessions?",
				"Hoeveel berichten en video's heb je per dag bekeken en in hoeveel sessies?"),
			Extract: contentViewing,
		},
	}
}

func media(d Descriptor) Descriptor {
	d.NeedsPictures = true
	return d
}

var impressionLayouts = []string{
	"Jan 2, 2006 3:04:05PM",
	"Jan 2, 2006 3:04:05pm",
	"Jan 2, 2006 3:04:05 PM",
}

func privacyPolicyUpdates(in *Input) (*table.Table, error) {
	items, err := records.ListAt(in.Record, "policy_updates_and_permissions_notification_of_privacy_policy_updates")
	if err != nil {
		return nil, err
	}
	t := table.New("", "", in.T(locale.KeyDate),
		in.Text(tr("Status der Einwilligung", "Consent status", "Toestemmingsstatus")))
	for _, item := range items {
		raw, _ := field(item, "value", "Impression Time")
		s, _ := raw.(string)
		status, _ := field(item, "value", "Consent Status")
		t.Append(in.Days.ParseDay(s, impressionLayouts...), status)
	}
	return t, nil
}

func nonEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case string:
		return val != ""
	}
	return true
}

func linkedMetaAccounts(in *Input) (*table.Table, error) {
	items, err := records.ListAt(in.Record, "label_values")
	if err != nil {
		return nil, err
	}
	t := table.New("", "", in.Text(tr("Verbundene Konten", "Connected accounts", "Gekoppelde accounts")))
	for _, item := range items {
		if d, ok := records.Resolve(item, "dict"); !ok || !nonEmpty(d) {
			continue
		}
		title, _ := records.Resolve(item, "title")
		t.Append(title)
	}
	if t.Len() == 0 {
		t.Append(in.T(locale.KeyNone))
	}
	return t, nil
}

// present reports a field that is present and not the literal "False".
func present(v any, ok bool) bool {
	return ok && v != nil && v != "False"
}

func personalInformation(in *Input) (*table.Table, error) {
	profile, err := records.Lookup(in.Record, "profile_user", 0)
	if err != nil {
		return nil, err
	}

	var photo bool
	if mmd, ok := optional(profile, "media_map_data"); ok {
		if p, ok := records.Resolve(mmd, "Profile Photo", "Profilbild"); ok {
			photo = present(records.Resolve(p, "uri"))
		}
	}
	email := present(field(profile, "value", "Email", "E-Mail-Adresse"))
	phone := present(field(profile, "value", "Phone Confirmed", "Telefonnummer bestätigt"))
	private, _ := field(profile, "value", "Private Account", "Privates Konto")
	name, _ := field(profile, "value", "Name")
	display, _ := name.(string)

	t := table.New("", "",
		in.Text(tr("Profilbild", "Profile image", "Profielafbeelding")),
		in.Text(tr("Email", "Email", "Email")),
		in.Text(tr("Telefon", "Phone", "Telefoon")),
		in.Text(tr("Privates Konto", "Private account", "Privé-account")),
		in.Text(tr("Echter Name im Profil", "Real name in profile", "Echte naam in profiel")),
	)
	t.Append(
		locale.Indicator(in.Locale, photo),
		locale.Indicator(in.Locale, email),
		locale.Indicator(in.Locale, phone),
		locale.Indicator(in.Locale, private),
		locale.Indicator(in.Locale, in.Names.RealName(display)),
	)
	return t, nil
}

func profileChanges(in *Input) (*table.Table, error) {
	items, err := records.ListAt(in.Record, "profile_profile_change")
	if err != nil {
		return nil, err
	}
	t := table.New("", "", in.T(locale.KeyDate),
		in.Text(tr("Art der Änderung", "Type of change made", "Soort wijziging gemaakt")))
	for _, item := range items {
		changed, _ := field(item, "value", "Changed", "Geändert")
		ts, _ := field(item, "timestamp", "Change Date", "Datum ändern")
		t.Append(in.Days.Day(ts), changed)
	}
	return t, nil
}

func commentsAllowedFrom(in *Input) (*table.Table, error) {
	setting, err := records.Lookup(in.Record, "settings_allow_comments_from", 0)
	if err != nil {
		return nil, err
	}
	v, ok := field(setting, "value", "Comments Allowed From", "Kommentieren gestattet für")
	if !ok || v == nil {
		v = in.T(locale.KeyUnknown)
	}
	return singleRow(in, tr("Einschränkungen", "Restrictions", "Beperkingen"), v), nil
}

func consents(in *Input) (*table.Table, error) {
	ts, _ := optional(in.Record, "timestamp")
	day := in.Days.Day(ts)
	labels, err := records.ListAt(in.Record, "label_values")
	if err != nil {
		return nil, err
	}
	t := table.New("", "", in.T(locale.KeyDate), in.Text(colMessage))
	for _, l := range labels {
		label, _ := records.Resolve(l, "label")
		t.Append(day, label)
	}
	return t, nil
}

func crossAppMessaging(in *Input) (*table.Table, error) {
	items, err := records.ListAt(in.Record, "settings_upgraded_to_cross_app_messaging")
	if err != nil {
		return nil, err
	}
	t := table.New("", "", in.Text(tr("App-übergreifende Nachrichten", "Cross-app messaging", "Berichten tussen apps")))
	for _, item := range items {
		v, _ := field(item, "value",
			"Aktualisierung auf App-übergreifendes Messaging durchgeführt",
			"Upgraded to cross-app messaging")
		t.Append(locale.Indicator(in.Locale, v))
	}
	return t, nil
}

func accountPrivacyChanges(in *Input) (*table.Table, error) {
	items, err := records.ListAt(in.Record, "account_history_account_privacy_history")
	if err != nil {
		return nil, err
	}
	events := make([]aggregate.Event, 0, len(items))
	for _, item := range items {
		ts, _ := field(item, "timestamp", "Time", "Zeit")
		title, _ := records.Resolve(item, "title")
		events = append(events, aggregate.Event{Day: in.Days.Day(ts), Value: title})
	}
	t := table.New("", "", in.T(locale.KeyDate),
		in.Text(tr("Art des Wechsels", "Type of change", "Soort wijziging")))
	for _, g := range aggregate.GroupByDay(events) {
		t.Append(g.Day, g.Values)
	}
	return t, nil
}

// sessionActivity lists login or logout events. The title holds an ISO
// timestamp which is split into day and wall clock in the export offset.
func sessionActivity(list string) Func {
	return func(in *Input) (*table.Table, error) {
		items, err := records.ListAt(in.Record, list)
		if err != nil {
			return nil, err
		}
		t := table.New("", "", in.T(locale.KeyDate), in.T(locale.KeyTime), in.T(locale.KeyUserAgent))
		for _, item := range items {
			title, _ := records.Resolve(item, "title")
			s, _ := title.(string)
			var clock any
			if at, err := time.Parse(time.RFC3339, s); err == nil {
				clock = in.Days.Clock(at)
			}
			agent, _ := field(item, "value", "User Agent", "User-Agent")
			t.Append(in.Days.ParseDay(s, time.RFC3339), clock, agent)
		}
		return t, nil
	}
}

// savedContent counts saved items per day. Items without a save time are
// skipped; an artifact with none left yields a no-entries row.
func savedContent(key, list string, candidates ...string) Func {
	return func(in *Input) (*table.Table, error) {
		items, err := optionalList(in.Record, []any{list})
		if err != nil {
			return nil, err
		}
		var days []string
		for _, item := range items {
			ts, ok := field(item, "timestamp", candidates...)
			if !ok {
				continue
			}
			days = append(days, in.Days.Day(ts))
		}
		if len(days) == 0 {
			return noEntries(in, key), nil
		}
		return countTable(in, days, colSavedContent), nil
	}
}

func sentMessages(in *Input) (*table.Table, error) {
	msgs, err := records.Items(in.Record)
	if err != nil {
		return nil, err
	}
	events := make([]aggregate.Event, 0, len(msgs))
	for _, m := range msgs {
		ts, _ := records.Resolve(m, "timestamp")
		conv, _ := records.Resolve(m, "conversation")
		events = append(events, aggregate.Event{Day: in.Days.Day(ts), Value: conv})
	}
	t := table.New("", "", in.T(locale.KeyDate), in.Text(colSent), in.Text(colConversation))
	for _, g := range aggregate.GroupByDay(events) {
		t.Append(g.Day, g.Count, distinct(g.Values))
	}
	return t, nil
}

func distinct(values []any) int {
	seen := make(map[any]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func messagingSessions(in *Input) (*table.Table, error) {
	msgs, err := records.Items(in.Record)
	if err != nil {
		return nil, err
	}
	var stamps []int64
	for _, m := range msgs {
		ts, _ := records.Resolve(m, "timestamp")
		if sec, ok := aggregate.Epoch(ts); ok {
			stamps = append(stamps, sec)
		}
	}
	t := table.New("", "", in.T(locale.KeyDate), in.T(locale.KeySessions), in.T(locale.KeyActiveSeconds))
	for _, d := range aggregate.Segment(stamps, in.Sessions.Gap, in.Sessions.Tail, in.Days) {
		t.Append(d.Day, d.Sessions, int64(d.Active/time.Second))
	}
	return t, nil
}

var viewingSignals = []struct {
	slot string
	list string
}{
	{"posts_viewed", "impressions_history_posts_seen"},
	{"videos_watched", "impressions_history_videos_watched"},
}

type viewingDay struct {
	posts, videos int
	sessions      int
	active        time.Duration
}

// contentViewing joins viewed posts and watched videos per day and derives
// viewing sessions over both signals together.
func contentViewing(in *Input) (*table.Table, error) {
	bundle, ok := in.Record.(records.Bundle)
	if !ok {
		return nil, &records.ShapeError{Want: "bundle", Got: recordKind(in.Record)}
	}

	days := make(map[string]*viewingDay)
	at := func(day string) *viewingDay {
		d, ok := days[day]
		if !ok {
			d = &viewingDay{}
			days[day] = d
		}
		return d
	}

	var stamps []int64
	for i, sig := range viewingSignals {
		rec := bundle[sig.slot]
		if records.Empty(rec) {
			continue
		}
		items, err := records.ListAt(rec, sig.list)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			raw, _ := optional(item, timeTimestamp...)
			d := at(in.Days.Day(raw))
			if i == 0 {
				d.posts++
			} else {
				d.videos++
			}
			if sec, ok := aggregate.Epoch(raw); ok {
				stamps = append(stamps, sec)
			}
		}
	}
	for _, s := range aggregate.Segment(stamps, in.Sessions.Gap, in.Sessions.Tail, in.Days) {
		d := at(s.Day)
		d.sessions, d.active = s.Sessions, s.Active
	}

	order := make([]string, 0, len(days))
	for day := range days {
		order = append(order, day)
	}
	sortDays(order)

	t := table.New("", "", in.T(locale.KeyDate), in.Text(colPostsViewed), in.Text(colVideosViewed),
		in.T(locale.KeySessions), in.T(locale.KeyActiveSeconds))
	for _, day := range order {
		d := days[day]
		t.Append(day, d.posts, d.videos, d.sessions, int64(d.active/time.Second))
	}
	return t, nil
}
