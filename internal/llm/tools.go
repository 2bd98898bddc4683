package llm

// WebSearchToolName is the function name the model uses to request a search.
const WebSearchToolName = "web_search"

// WebSearchTool lets the model ask for a web search during a chat turn.
var WebSearchTool = Tool{
	Name:        WebSearchToolName,
	Description: "Search the web for current information, news, facts, or any information that might not be in your training data. Use this when the user asks about recent events, current data, or when you need up-to-date information.",
	Params: []ToolParam{
		{Name: "query", Description: "The search query to find relevant information", Required: true},
	},
}
