package models

// Channel identifies one of the six complaint-intake sources. The string
// value doubles as the physical snapshot table name.
type Channel string

const (
	ChannelCMJandarshan        Channel = "cm_jandarshan"
	ChannelCollectorJandarshan Channel = "coll_jandarshan"
	ChannelCallCenter          Channel = "callcenter"
	ChannelPGPortal            Channel = "pgportal"
	ChannelPostMail            Channel = "jansikayatpostmail"
	ChannelWeb                 Channel = "jansikayatweb"
)

// AllChannels returns the six intake channels in stable order.
func AllChannels() []Channel {
	return []Channel{
		ChannelCallCenter,
		ChannelCMJandarshan,
		ChannelCollectorJandarshan,
		ChannelPostMail,
		ChannelWeb,
		ChannelPGPortal,
	}
}

// Table returns the snapshot table for the channel. Only values produced by
// ChannelFromParam or AllChannels reach SQL, so interpolation is safe.
func (c Channel) Table() string {
	return string(c)
}

// RecordColumn returns the per-channel count column on complaint_records.
func (c Channel) RecordColumn() string {
	switch c {
	case ChannelCMJandarshan:
		return "cm_jandarshan"
	case ChannelCollectorJandarshan:
		return "collector_jandarshan"
	case ChannelCallCenter:
		return "call_center"
	case ChannelPGPortal:
		return "pg_portal"
	case ChannelPostMail:
		return "jansikayat_post_mail"
	case ChannelWeb:
		return "jansikayat_web"
	}
	return ""
}

// channelParams maps URL parameters, including the legacy camel-case names
// still used by older dashboard builds, to channels.
var channelParams = map[string]Channel{
	"callcenter":          ChannelCallCenter,
	"callCenter":          ChannelCallCenter,
	"cm_jandarshan":       ChannelCMJandarshan,
	"cmJandarshan":        ChannelCMJandarshan,
	"coll_jandarshan":     ChannelCollectorJandarshan,
	"collectorJandarshan": ChannelCollectorJandarshan,
	"jansikayatpostmail":  ChannelPostMail,
	"jansikayatPostMail":  ChannelPostMail,
	"pgportal":            ChannelPGPortal,
	"pgPortal":            ChannelPGPortal,
	"jansikayatweb":       ChannelWeb,
	"jansikayatWeb":       ChannelWeb,
}

// ChannelFromParam resolves a URL path or query parameter to a channel.
func ChannelFromParam(name string) (Channel, bool) {
	c, ok := channelParams[name]
	return c, ok
}

// portalLabels maps the human-readable portal labels used by the dashboard
// selectors to channels. Both label generations are accepted.
var portalLabels = map[string]Channel{
	"CM Jandarshan":           ChannelCMJandarshan,
	"MukhyaMantri Jandarshan": ChannelCMJandarshan,
	"Collector Jandarshan":    ChannelCollectorJandarshan,
	"Call Center":             ChannelCallCenter,
	"PG Portal":               ChannelPGPortal,
	"Jansikayat Post Mail":    ChannelPostMail,
	"Janshikayat (Post/Mail)": ChannelPostMail,
	"Jansikayat Web":          ChannelWeb,
	"Janshikayat (Web)":       ChannelWeb,
}

// ChannelFromPortalLabel resolves a display label to a channel.
func ChannelFromPortalLabel(label string) (Channel, bool) {
	c, ok := portalLabels[label]
	return c, ok
}
