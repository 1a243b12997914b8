package buyingagent

type ModelConfig struct {
	ModelID     string  `env:"MODEL_ID,default=moonshotai/Kimi-K2-Instruct"`
	MaxTokens   int32   `env:"MAX_TOKENS,default=1024"`
	Temperature float32 `env:"TEMPERATURE,default=0.2"`
	TopP        float32 `env:"TOP_P,default=0.9"`
}

type AgentConfig struct {
	ArtifactsInventoryPath string  `env:"ARTIFACTS_INVENTORY_PATH,default=artifacts/inventory.json"`
	ArtifactsSuppliersPath string  `env:"ARTIFACTS_SUPPLIERS_PATH,default=artifacts/suppliers.json"`
	ArtifactsOrdersPath    string  `env:"ARTIFACTS_ORDERS_PATH,default=artifacts/purchase_orders.json"`
	BaseRouterEndpoint     string  `env:"BASE_ROUTER_ENDPOINT,default=https://router.huggingface.co/v1"`
	RouterToken            string  `env:"HF_TOKEN,default="`
	Budget                 float64 `env:"PROCUREMENT_BUDGET,default=75000"`
	VelocityWindowDays     int     `env:"VELOCITY_WINDOW_DAYS,default=30"`
	NegotiationRequired    bool    `env:"NEGOTIATION_REQUIRED,default=true"`
}
