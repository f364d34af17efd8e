package billing

// Config holds the Sipay gateway credentials and endpoints.
type Config struct {
	BaseURL     string `env:"SIPAY_BASE_URL" envDefault:"https://provisioning.sipay.com.tr/ccpayment"`
	AppID       string `env:"SIPAY_APP_ID,required"`
	AppSecret   string `env:"SIPAY_APP_SECRET,required"`
	MerchantKey string `env:"SIPAY_MERCHANT_KEY,required"`

	// AppBaseURL is this application's public URL, used to build the 3-D
	// Secure return and cancel addresses.
	AppBaseURL string `env:"APP_BASE_URL,required"`
}
